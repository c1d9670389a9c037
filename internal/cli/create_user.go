package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/chatauth/internal/auth"
	"github.com/mrlokans/chatauth/internal/config"
	"github.com/mrlokans/chatauth/internal/database"
	"github.com/mrlokans/chatauth/internal/database/users"
)

// CreateUserCommand registers an account directly in the database,
// applying the same validation as the signup endpoint.
type CreateUserCommand struct {
	DatabasePath string
	FullName     string
	Email        string
	Password     string
	Cost         int

	Out io.Writer
}

// NewCreateUserCommand creates a new CreateUserCommand
func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{Out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the user database")
	fs.StringVar(&cmd.FullName, "name", "", "Full name (required)")
	fs.StringVar(&cmd.Email, "email", "", "Email address (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password, at least 6 characters (required)")
	fs.IntVar(&cmd.Cost, "cost", 10, "bcrypt cost factor")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -name NAME -email EMAIL -password PASSWORD [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user account without going through the API.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the command
func (cmd *CreateUserCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	// Signup never touches the uploader
	svc, err := auth.NewService(users.NewRepository(db.DB), nil, config.Auth{BcryptCost: cmd.Cost})
	if err != nil {
		return err
	}

	user, err := svc.Signup(context.Background(), auth.SignupInput{
		FullName: cmd.FullName,
		Email:    cmd.Email,
		Password: cmd.Password,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.Out, "Created user %s (%s)\n", user.Email, user.ID)
	return err
}
