package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/darasahq/ubao/core"
	"github.com/darasahq/ubao/core/board"
	"github.com/darasahq/ubao/services/boardapi"
)

type commandLine struct {
	ctrl   *board.Controller
	client *boardapi.Client
	role   core.Role
	in     *bufio.Scanner
	out    io.Writer

	classes  []board.Class
	lectures []board.Lecture
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Commands:")
	fmt.Fprintln(cli.out, "  classes              - list your classes")
	fmt.Fprintln(cli.out, "  class N              - select class N")
	fmt.Fprintln(cli.out, "  lectures             - list the selected class's lectures")
	fmt.Fprintln(cli.out, "  lecture N            - open lecture N's board")
	fmt.Fprintln(cli.out, "  board                - show the board")
	fmt.Fprintln(cli.out, "  refresh              - reload the board")
	if cli.role == core.RoleStudent {
		fmt.Fprintln(cli.out, "  join CODE            - join a class by code")
		fmt.Fprintln(cli.out, "  ask TEXT             - post a question")
	} else {
		fmt.Fprintln(cli.out, "  important N          - toggle importance on question N")
		fmt.Fprintln(cli.out, "  reply N TEXT         - reply to question N")
	}
	fmt.Fprintln(cli.out, "  quit")
}

func (cli *commandLine) run() {
	ctx := context.Background()
	cli.printUsage()
	fmt.Fprint(cli.out, "> ")
	for cli.in.Scan() {
		line := strings.TrimSpace(cli.in.Text())
		if line != "" {
			if quit := cli.dispatch(ctx, line); quit {
				return
			}
		}
		fmt.Fprint(cli.out, "> ")
	}
}

func (cli *commandLine) dispatch(ctx context.Context, line string) (quit bool) {
	cmd, rest := line, ""
	if i := strings.IndexByte(line, ' '); i > 0 {
		cmd, rest = line[:i], strings.TrimSpace(line[i+1:])
	}

	var err error
	switch cmd {
	case "classes":
		err = cli.listClasses(ctx)
	case "class":
		err = cli.selectClass(ctx, rest)
	case "lectures":
		err = cli.listLectures(ctx)
	case "lecture":
		err = cli.selectLecture(ctx, rest)
	case "board":
		cli.renderBoard()
	case "refresh":
		cli.ctrl.Refresh(ctx)
		cli.renderBoard()
	case "join":
		err = cli.join(ctx, rest)
	case "ask":
		err = cli.ask(ctx, rest)
	case "important":
		err = cli.toggleImportant(ctx, rest)
	case "reply":
		err = cli.reply(ctx, rest)
	case "quit", "exit":
		return true
	default:
		cli.printUsage()
	}
	if err != nil {
		// user-initiated failures surface; the typed input is still on screen
		fmt.Fprintf(cli.out, "error: %v\n", err)
	}
	return false
}

func (cli *commandLine) listClasses(ctx context.Context) error {
	classes, err := cli.client.MyClasses(ctx)
	if err != nil {
		return err
	}
	cli.classes = classes
	for i, c := range classes {
		fmt.Fprintf(cli.out, "%2d. %s (code: %s)\n", i+1, c.Subject, c.Code)
	}
	return nil
}

func (cli *commandLine) selectClass(ctx context.Context, arg string) error {
	i, err := pickIndex(arg, len(cli.classes), "class")
	if err != nil {
		return err
	}
	cli.ctrl.SelectClass(cli.classes[i].ID)
	cli.lectures = nil
	return cli.listLectures(ctx)
}

func (cli *commandLine) listLectures(ctx context.Context) error {
	classID := cli.ctrl.ClassID()
	if classID == "" {
		return fmt.Errorf("select a class first")
	}
	lectures, err := cli.client.Lectures(ctx, classID)
	if err != nil {
		return err
	}
	cli.lectures = lectures
	for i, l := range lectures {
		fmt.Fprintf(cli.out, "%2d. %s\n", i+1, l.Title)
	}
	return nil
}

func (cli *commandLine) selectLecture(ctx context.Context, arg string) error {
	i, err := pickIndex(arg, len(cli.lectures), "lecture")
	if err != nil {
		return err
	}
	cli.ctrl.SelectLecture(ctx, cli.lectures[i].ID)
	cli.renderBoard()
	return nil
}

func (cli *commandLine) renderBoard() {
	if cli.role == core.RoleTA {
		TABoard{Controller: cli.ctrl}.Render(cli.out)
	} else {
		StudentBoard{Controller: cli.ctrl}.Render(cli.out)
	}
}

func (cli *commandLine) join(ctx context.Context, code string) error {
	if err := cli.client.JoinClass(ctx, code); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Joined!")
	return cli.listClasses(ctx)
}

func (cli *commandLine) ask(ctx context.Context, text string) error {
	if err := (StudentBoard{Controller: cli.ctrl}).Ask(ctx, text); err != nil {
		if submit := cli.ctrl.Submit(); submit.Status == board.RequestFailed && submit.Message != "" {
			return errors.New(submit.Message)
		}
		return err
	}
	cli.renderBoard()
	return nil
}

func (cli *commandLine) toggleImportant(ctx context.Context, arg string) error {
	q, err := cli.pickQuestion(arg)
	if err != nil {
		return err
	}
	if err := (TABoard{Controller: cli.ctrl}).ToggleImportant(ctx, q); err != nil {
		return err
	}
	cli.renderBoard()
	return nil
}

func (cli *commandLine) reply(ctx context.Context, rest string) error {
	arg, text := rest, ""
	if i := strings.IndexByte(rest, ' '); i > 0 {
		arg, text = rest[:i], strings.TrimSpace(rest[i+1:])
	}
	if text == "" {
		return fmt.Errorf("usage: reply N TEXT")
	}
	q, err := cli.pickQuestion(arg)
	if err != nil {
		return err
	}
	if err := (TABoard{Controller: cli.ctrl}).Reply(ctx, q, text); err != nil {
		return err
	}
	cli.renderBoard()
	return nil
}

func (cli *commandLine) pickQuestion(arg string) (board.Question, error) {
	questions := cli.ctrl.Questions()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(questions) {
		return board.Question{}, fmt.Errorf("no such question: %q", arg)
	}
	return questions[n-1], nil
}

// pickIndex resolves a 1-based list argument typed by the user.
func pickIndex(arg string, length int, kind string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > length {
		return 0, fmt.Errorf("no such %s: %q (list them first)", kind, arg)
	}
	return n - 1, nil
}
