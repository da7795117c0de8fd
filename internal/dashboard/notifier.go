package dashboard

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/spigell/recruit-dashboard/internal/logger"
	"github.com/spigell/recruit-dashboard/internal/workflow"
)

// Notifier prints workflow events for the user and mirrors them to the log.
type Notifier struct {
	out    *Console
	logger *zap.Logger
}

func NewNotifier(out *Console, log *zap.Logger) *Notifier {
	return &Notifier{out: out, logger: logger.OrNop(log)}
}

func (n *Notifier) Notify(e workflow.Event) {
	fields := []zap.Field{zap.Stringer("event", e.Kind)}
	if e.JobID != "" {
		fields = append(fields, zap.String(logger.FieldJobID, e.JobID))
	}

	if e.Kind == workflow.EventOperationFailed {
		n.logger.Debug(e.Message, append(fields, zap.Error(e.Err))...)
		n.print(fmt.Sprintf("! %s %v\n", e.Message, e.Err))
		return
	}

	n.logger.Debug(e.Message, fields...)
	n.print(fmt.Sprintf("> %s\n", e.Message))
}

func (n *Notifier) print(line string) {
	_ = n.out.Do(func(w io.Writer) error {
		_, err := io.WriteString(w, line)
		return err
	})
}
