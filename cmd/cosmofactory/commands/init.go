package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/cosmofactory/internal/config"
	"git.home.luguber.info/inful/cosmofactory/internal/console"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file without asking"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	out := console.New(g.Stdout)
	_, err := config.Init(root.Dir, i.Force, promptConfirm(g.Stdin, g.Stdout))
	if errors.Is(err, config.ErrInitDeclined) {
		out.Notice(config.FileName + " was left unchanged")
		return nil
	}
	if err != nil {
		return err
	}
	out.Success(config.FileName + " file was successfully created")
	return nil
}

// promptConfirm asks a yes/no question on w and reads the answer from r.
// Anything other than y or yes, including end of input, is a no.
func promptConfirm(r io.Reader, w io.Writer) config.ConfirmFunc {
	if r == nil {
		return nil
	}
	reader := bufio.NewReader(r)
	return func(question string) (bool, error) {
		if _, err := fmt.Fprintf(w, "%s [y/N] ", question); err != nil {
			return false, err
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}
