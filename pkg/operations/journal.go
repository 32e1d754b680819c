package operations

import (
	"fmt"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/logging"
	"github.com/arthur-debert/savelink/pkg/types"
	"github.com/rs/zerolog"
)

// Log line tags
const (
	TagMigrate = "[MIGRATE]"
	TagLink    = "[LINK]"
	TagBackup  = "[BACKUP]"
	TagRestore = "[RESTORE]"
	TagWarning = "[WARNING]"
	TagError   = "[ERROR]"
	TagOK      = "[OK]"
)

// Sink receives every log line as soon as it is written
type Sink func(line string)

// journal accumulates the log of one operation
type journal struct {
	kind   types.OperationKind
	lines  []string
	sink   Sink
	logger zerolog.Logger
}

func newJournal(kind types.OperationKind, sink Sink, logger zerolog.Logger) *journal {
	return &journal{
		kind:   kind,
		sink:   sink,
		logger: logging.WithOperation(logger, kind.String()),
	}
}

func (j *journal) add(tag, format string, args ...interface{}) {
	line := tag + " " + fmt.Sprintf(format, args...)
	j.lines = append(j.lines, line)
	if j.sink != nil {
		j.sink(line)
	}

	switch tag {
	case TagError:
		j.logger.Error().Msg(line)
	case TagWarning:
		j.logger.Warn().Msg(line)
	default:
		j.logger.Info().Msg(line)
	}
}

func (j *journal) result(success bool, message string) types.OperationResult {
	return types.OperationResult{
		Kind:    j.kind,
		Success: success,
		Message: message,
		Log:     append([]string(nil), j.lines...),
	}
}

// succeed logs the final line and builds a successful result
func (j *journal) succeed(line, message string) types.OperationResult {
	j.add(TagOK, "%s", line)
	return j.result(true, message)
}

// fail logs err and builds a failed result with its message
func (j *journal) fail(err error) types.OperationResult {
	msg := errors.Message(err)
	j.logger.Debug().Err(err).Str("code", string(errors.GetErrorCode(err))).Msg("Operation failed")
	j.add(TagError, "%s", msg)
	return j.result(false, msg)
}

// failWith logs err but surfaces message to the user instead
func (j *journal) failWith(err error, message string) types.OperationResult {
	j.logger.Debug().Err(err).Str("code", string(errors.GetErrorCode(err))).Msg("Operation failed")
	j.add(TagError, "%s", errors.Message(err))
	return j.result(false, message)
}
