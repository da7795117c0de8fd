package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/spigell/recruit-dashboard/internal/cvfilter"
	"github.com/spigell/recruit-dashboard/internal/recruit"
	"github.com/spigell/recruit-dashboard/internal/workflow"
)

const (
	PromptCreateJob     = "Create job"
	PromptSelectJob     = "Select job"
	PromptReloadJobs    = "Reload jobs"
	PromptChooseFiles   = "Choose CV files"
	PromptConfirmUpload = "Upload selected CVs"
	PromptRefresh       = "Refresh rankings"
	PromptStatus        = "Show status"
	PromptQuit          = "Quit"
	PromptBack          = "back"
)

var errQuit = errors.New("quit requested")

// Workflow is the part of the controller the interactive session drives.
type Workflow interface {
	LoadJobs(ctx context.Context) error
	CreateJob(ctx context.Context, title, description string) (recruit.Job, error)
	SelectJob(ctx context.Context, id string) error
	SelectFiles(files []recruit.File) error
	ConfirmUpload(ctx context.Context) (workflow.UploadResult, error)
	RefreshRankings(ctx context.Context) error
	Snapshot() workflow.Snapshot
}

// Prompter asks the user for a choice or a line of input.
type Prompter interface {
	Select(label string, items []string) (int, string, error)
	Input(label string, validate func(string) error) (string, error)
}

// PromptUI is the terminal Prompter. When Out is set prompts draw through it.
type PromptUI struct {
	Out *Console
}

func (p PromptUI) Select(label string, items []string) (int, string, error) {
	s := promptui.Select{Label: label, Items: items, Size: 10}
	if p.Out != nil {
		s.Stdout = p.Out
	}
	return s.Run()
}

func (p PromptUI) Input(label string, validate func(string) error) (string, error) {
	in := promptui.Prompt{Label: label, Validate: validate}
	if p.Out != nil {
		in.Stdout = p.Out
	}
	return in.Run()
}

// Session is the interactive dashboard. Network intents run in the
// background so the menu stays usable while they are in flight.
type Session struct {
	wf          Workflow
	prompt      Prompter
	out         *Console
	logger      *zap.Logger
	strictTypes bool

	wg sync.WaitGroup
}

func NewSession(wf Workflow, prompt Prompter, out *Console, logger *zap.Logger, strictTypes bool) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		wf:          wf,
		prompt:      prompt,
		out:         out,
		logger:      logger,
		strictTypes: strictTypes,
	}
}

// Run shows the menu until the user quits, then waits for background intents.
func (s *Session) Run(ctx context.Context) error {
	defer s.wg.Wait()

	s.reloadJobs(ctx)

	for {
		_, action, err := s.prompt.Select(s.label(), menuItems(s.wf.Snapshot()))
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := s.handleAction(ctx, action); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
}

// Wait blocks until every background intent has finished.
func (s *Session) Wait() {
	s.wg.Wait()
}

func (s *Session) label() string {
	snap := s.wf.Snapshot()
	if snap.Selected == nil {
		return "Recruiter dashboard"
	}
	return fmt.Sprintf("Recruiter dashboard [%s]", snap.Selected.Title)
}

func (s *Session) handleAction(ctx context.Context, action string) error {
	switch action {
	case PromptCreateJob:
		return s.createJob(ctx)
	case PromptSelectJob:
		return s.selectJob(ctx)
	case PromptReloadJobs:
		s.reloadJobs(ctx)
		return nil
	case PromptChooseFiles:
		return s.chooseFiles(ctx)
	case PromptConfirmUpload:
		s.async("upload cvs", func() error {
			_, err := s.wf.ConfirmUpload(ctx)
			return err
		})
		return nil
	case PromptRefresh:
		s.async("refresh rankings", func() error {
			return s.wf.RefreshRankings(ctx)
		})
		return nil
	case PromptStatus:
		return s.status()
	case PromptQuit:
		return errQuit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func (s *Session) reloadJobs(ctx context.Context) {
	s.async("load jobs", func() error {
		return s.wf.LoadJobs(ctx)
	})
}

func (s *Session) createJob(ctx context.Context) error {
	title, err := s.prompt.Input("Job title", required("title"))
	if err != nil {
		return err
	}

	description, err := s.prompt.Input("Job description", required("description"))
	if err != nil {
		return err
	}

	s.async("create job", func() error {
		_, err := s.wf.CreateJob(ctx, title, description)
		return err
	})

	return nil
}

func (s *Session) selectJob(ctx context.Context) error {
	jobs := s.wf.Snapshot().Jobs
	if len(jobs) == 0 {
		s.printf("%s\n", noJobsMessage)
		return nil
	}

	items := make([]string, 0, len(jobs)+1)
	for _, job := range jobs {
		items = append(items, fmt.Sprintf("%s %s", job.ID, job.Title))
	}

	idx, choice, err := s.prompt.Select("Choose a job and press ENTER", append(items, PromptBack))
	if err != nil {
		return err
	}
	if choice == PromptBack || idx >= len(jobs) {
		return nil
	}

	id := jobs[idx].ID
	s.async("select job", func() error {
		return s.wf.SelectJob(ctx, id)
	})

	return nil
}

func (s *Session) chooseFiles(ctx context.Context) error {
	line, err := s.prompt.Input("CV file paths (space separated)", nil)
	if err != nil {
		return err
	}

	checked, err := cvfilter.Run(ctx, s.logger.Named("cvfilter"), cvfilter.Default(s.strictTypes, s.logger), strings.Fields(line))
	if err != nil {
		return err
	}

	if err := s.wf.SelectFiles(checked.Files()); err != nil {
		s.report("choose files", err)
		return nil
	}

	s.printf("%d file(s) selected\n", checked.Len())
	return nil
}

func (s *Session) async(op string, fn func() error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if err := fn(); err != nil {
			s.report(op, err)
		}
	}()
}

// report surfaces errors the controller does not turn into events itself.
func (s *Session) report(op string, err error) {
	var serviceErr *recruit.ServiceError
	if errors.As(err, &serviceErr) {
		return
	}

	s.logger.Debug("intent rejected", zap.String("op", op), zap.Error(err))
	s.printf("! %s: %v\n", op, err)
}

func (s *Session) status() error {
	snap := s.wf.Snapshot()

	return s.out.Do(func(w io.Writer) error {
		if err := RenderJobs(w, snap); err != nil {
			return err
		}
		fmt.Fprintln(w)
		return RenderJob(w, snap)
	})
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// menuItems hides actions that cannot run in the current state.
func menuItems(snap workflow.Snapshot) []string {
	items := []string{PromptCreateJob}
	if len(snap.Jobs) > 0 {
		items = append(items, PromptSelectJob)
	}
	if !snap.Ops.JobsLoad.InFlight() {
		items = append(items, PromptReloadJobs)
	}

	if snap.Selected != nil {
		if !snap.Ops.Upload.InFlight() {
			items = append(items, PromptChooseFiles)
		}
		if len(snap.Upload.Files) > 0 && !snap.Ops.Upload.InFlight() {
			items = append(items, PromptConfirmUpload)
		}
		if !snap.Ops.Rankings.InFlight() {
			items = append(items, PromptRefresh)
		}
	}

	return append(items, PromptStatus, PromptQuit)
}

func required(name string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
		return nil
	}
}
