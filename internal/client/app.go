package client

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MKhiriev/go-account-keeper/internal/adapter"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/models"
)

type command func(ctx context.Context, args []string) error

type App struct {
	adapter  adapter.ServerAdapter
	out      io.Writer
	commands map[string]command
	logger   *logger.Logger
}

// NewApp builds the client over serverAdapter. Command output is written to
// out; a non-empty token is installed on the adapter so that authenticated
// commands work without a login in the same process.
func NewApp(serverAdapter adapter.ServerAdapter, out io.Writer, token string, logger *logger.Logger) *App {
	if token != "" {
		serverAdapter.SetToken(token)
	}

	a := &App{
		adapter: serverAdapter,
		out:     out,
		logger:  logger,
	}
	a.commands = map[string]command{
		"register": a.register,
		"login":    a.login,
		"me":       a.me,
		"list":     a.list,
		"update":   a.update,
		"delete":   a.delete,
		"version":  a.version,
	}

	return a
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w, expected one of: %s", ErrNoCommand, a.commandNames())
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		return fmt.Errorf("%w %q, expected one of: %s", ErrUnknownCommand, args[0], a.commandNames())
	}

	a.logger.Debug().Str("command", args[0]).Msg("running command")
	return cmd(ctx, args[1:])
}

func (a *App) commandNames() string {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := a.flagSet("register")
	firstName := fs.String("first", "", "first name")
	lastName := fs.String("last", "", "last name")
	mobileNumber := fs.String("mobile", "", "mobile number")
	password := fs.String("password", "", "password")
	picturePath := fs.String("picture", "", "path to the profile picture")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *picturePath == "" {
		return fmt.Errorf("%w: -picture", ErrMissingFlag)
	}
	picture, err := readPicture(*picturePath)
	if err != nil {
		return err
	}

	user, err := a.adapter.Register(ctx, models.RegisterRequest{
		FirstName:      *firstName,
		LastName:       *lastName,
		MobileNumber:   *mobileNumber,
		Password:       *password,
		ProfilePicture: picture,
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	return a.print(user)
}

// login prints the session token on its own line so that it can be captured
// into CLIENT_TOKEN.
func (a *App) login(ctx context.Context, args []string) error {
	fs := a.flagSet("login")
	mobileNumber := fs.String("mobile", "", "mobile number")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.adapter.Login(ctx, models.LoginRequest{MobileNumber: *mobileNumber, Password: *password}); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	_, err := fmt.Fprintln(a.out, a.adapter.Token())
	return err
}

func (a *App) me(ctx context.Context, args []string) error {
	if err := a.flagSet("me").Parse(args); err != nil {
		return err
	}

	user, err := a.adapter.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("me: %w", err)
	}

	return a.print(user)
}

func (a *App) list(ctx context.Context, args []string) error {
	if err := a.flagSet("list").Parse(args); err != nil {
		return err
	}

	users, err := a.adapter.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}

	return a.print(users)
}

// update sends only the flags that were given on the command line.
func (a *App) update(ctx context.Context, args []string) error {
	fs := a.flagSet("update")
	id := fs.Int64("id", 0, "id of the user to update")
	fs.String("first", "", "new first name")
	fs.String("last", "", "new last name")
	fs.String("mobile", "", "new mobile number")
	fs.String("password", "", "new password")
	picturePath := fs.String("picture", "", "path to a new profile picture")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("%w: -id", ErrMissingFlag)
	}

	update := models.UserUpdate{ID: *id}
	fs.Visit(func(f *flag.Flag) {
		value := f.Value.String()
		switch f.Name {
		case "first":
			update.FirstName = &value
		case "last":
			update.LastName = &value
		case "mobile":
			update.MobileNumber = &value
		case "password":
			update.Password = &value
		}
	})

	if *picturePath != "" {
		picture, err := readPicture(*picturePath)
		if err != nil {
			return err
		}
		update.ProfilePicture = picture
	}

	if err := a.adapter.UpdateUser(ctx, update); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	_, err := fmt.Fprintln(a.out, "user updated")
	return err
}

func (a *App) delete(ctx context.Context, args []string) error {
	fs := a.flagSet("delete")
	id := fs.Int64("id", 0, "id of the user to delete")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("%w: -id", ErrMissingFlag)
	}

	if err := a.adapter.DeleteUser(ctx, *id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	_, err := fmt.Fprintln(a.out, "user deleted")
	return err
}

func (a *App) version(ctx context.Context, args []string) error {
	if err := a.flagSet("version").Parse(args); err != nil {
		return err
	}

	version, err := a.adapter.Version(ctx)
	if err != nil {
		return fmt.Errorf("version: %w", err)
	}

	_, err = fmt.Fprintln(a.out, version)
	return err
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *App) print(v any) error {
	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func readPicture(path string) (*models.Picture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading picture: %w", err)
	}

	return &models.Picture{
		FileName:    filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Data:        data,
	}, nil
}
