package domain

import "fmt"

// Result is what the controller reports to its caller after one tick.
type Result uint8

const (
	ResultOngoing Result = iota
	ResultOngoingLoadNext
	ResultFinished
	ResultCriticalError
)

// Terminal reports whether the caller should stop polling.
func (r Result) Terminal() bool {
	return r == ResultFinished || r == ResultCriticalError
}

func (r Result) String() string {
	switch r {
	case ResultOngoing:
		return "ongoing"
	case ResultOngoingLoadNext:
		return "ongoing_load_next"
	case ResultFinished:
		return "finished"
	case ResultCriticalError:
		return "critical_error"
	default:
		return "unknown"
	}
}

// MarshalText lets results appear by name in JSON reports and logs.
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText is the inverse of MarshalText. Unknown names are an error and leave r unchanged.
func (r *Result) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ongoing":
		*r = ResultOngoing
	case "ongoing_load_next":
		*r = ResultOngoingLoadNext
	case "finished":
		*r = ResultFinished
	case "critical_error":
		*r = ResultCriticalError
	default:
		return fmt.Errorf("unknown result %q", text)
	}
	return nil
}
