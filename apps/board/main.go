package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/darasahq/ubao/core"
	"github.com/darasahq/ubao/core/board"
	"github.com/darasahq/ubao/services/boardapi"
	logsvc "github.com/darasahq/ubao/services/logger"
	"github.com/darasahq/ubao/services/persist"
	"github.com/darasahq/ubao/services/stream"
)

var readPasswordFunc = term.ReadPassword // mockable

func main() {
	username := flag.String("username", "", "Login username. The password will be prompted next.")
	flag.Parse()

	conf := core.NewConfig()
	logger := logsvc.NewStdLogger(log.New(os.Stderr, "BOARD : ", log.LstdFlags))

	in := bufio.NewScanner(os.Stdin)

	token, err := login(conf, in, *username)
	if err != nil {
		logger.Fatal(fmt.Sprintf("login failed: %v", err), err)
	}
	claims, err := core.ParseClaims(token)
	if err != nil {
		logger.Fatal(fmt.Sprintf("bad token: %v", err), err)
	}
	role := claims.Role()
	fmt.Printf("Welcome %s (%s)\n", claims.Name, role)

	client := boardapi.NewClient(conf, token)
	selections, err := persist.NewFileStore(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("selection store: %v", err), err)
	}

	subscribe := func(lectureID string, onRefresh func()) board.Subscription {
		if sub := stream.Open(conf, lectureID, token, onRefresh, logger); sub != nil {
			return sub
		}
		return nil
	}

	ctrl := board.NewController(board.ControllerDeps{
		Gateway:    client,
		Subscribe:  subscribe,
		Selections: selections,
		Role:       role,
		Logger:     logger,
	})
	defer ctrl.Close()
	ctrl.RestoreSelection(context.Background())

	cli := &commandLine{
		ctrl:   ctrl,
		client: client,
		role:   role,
		in:     in,
		out:    os.Stdout,
	}
	cli.run()
}

func login(conf *core.Config, in *bufio.Scanner, username string) (string, error) {
	if username == "" {
		fmt.Print("Username: ")
		if !in.Scan() {
			return "", fmt.Errorf("no username provided")
		}
		username = core.CleanString(in.Text(), true /* lower */)
	}
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}

	client := boardapi.NewClient(conf, "")
	return client.Login(context.Background(), username, strings.TrimSpace(string(pwd)))
}
