package domain

import "fmt"

// CommandKind enumerates what a reaction can ask the controller to do.
type CommandKind uint8

const (
	CommandDoNothing CommandKind = iota
	CommandReloadStep
	CommandLoadNextStep
	CommandFinished
	CommandCritical
)

func (k CommandKind) String() string {
	switch k {
	case CommandDoNothing:
		return "do_nothing"
	case CommandReloadStep:
		return "reload_step"
	case CommandLoadNextStep:
		return "load_next_step"
	case CommandFinished:
		return "finished"
	case CommandCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Command is the value returned by a Reaction.
// Target is only meaningful for CommandLoadNextStep.
type Command struct {
	Kind   CommandKind
	Target StepID
}

// Commands without a target.
var (
	CmdDoNothing  = Command{Kind: CommandDoNothing, Target: Undefined}
	CmdReloadStep = Command{Kind: CommandReloadStep, Target: Undefined}
	CmdFinished   = Command{Kind: CommandFinished, Target: Undefined}
	CmdCritical   = Command{Kind: CommandCritical, Target: Undefined}
)

// LoadNext asks the controller to make target the current step.
func LoadNext(target StepID) Command {
	return Command{Kind: CommandLoadNextStep, Target: target}
}

func (c Command) String() string {
	if c.Kind == CommandLoadNextStep {
		return fmt.Sprintf("%s(%s)", c.Kind, c.Target)
	}
	return c.Kind.String()
}
