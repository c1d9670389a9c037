package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrlokans/chatauth/internal/auth"
)

// HashPasswordCommand prints a bcrypt hash, for seeding users by hand.
type HashPasswordCommand struct {
	Password string
	Cost     int

	In  io.Reader
	Out io.Writer
}

// NewHashPasswordCommand creates a new HashPasswordCommand
func NewHashPasswordCommand() *HashPasswordCommand {
	return &HashPasswordCommand{In: os.Stdin, Out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *HashPasswordCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)

	fs.StringVar(&cmd.Password, "password", "", "Password to hash (read from stdin if omitted)")
	fs.IntVar(&cmd.Cost, "cost", 10, "bcrypt cost factor")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s hash-password [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print the bcrypt hash of a password.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  echo 'secret1' | %s hash-password\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the command
func (cmd *HashPasswordCommand) Run() error {
	password := cmd.Password
	if password == "" {
		line, err := bufio.NewReader(cmd.In).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	hash, err := auth.HashPassword(password, cmd.Cost)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.Out, hash)
	return err
}
