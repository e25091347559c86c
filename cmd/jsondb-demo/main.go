// Command jsondb-demo walks through the jsondb API against a store on the
// local filesystem.
//
// The base directory is taken from the JSONDB_DIR environment variable, which
// may also be set through a .env file; it defaults to "json-db".
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/vinicius-lino-figueiredo/jsondb"
)

// User is the record type stored by the demo.
type User struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// GetID makes User usable with [jsondb.Store.CreateRecord].
func (u User) GetID() string { return u.ID }

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintln(os.Stderr, "jsondb-demo:", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	baseDir := os.Getenv("JSONDB_DIR")
	if baseDir == "" {
		baseDir = "json-db"
	}

	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	db, err := jsondb.NewStore(
		jsondb.WithBaseDir(baseDir),
		jsondb.WithModel("users"),
		jsondb.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	alice := User{ID: "1", Name: "Alice", Tags: []string{"admin"}}
	bob := User{ID: "2", Name: "Bob", Email: "bob@example.com"}
	if err := db.CreateRecord(ctx, alice); err != nil {
		return err
	}
	if err := db.CreateRecord(ctx, bob); err != nil {
		return err
	}
	logger.Info("created records", "model", "users", "count", 2)

	id, err := db.Insert(ctx, User{Name: "Carol"})
	if err != nil {
		return err
	}
	logger.Info("inserted record with generated id", "id", id)

	var found User
	if err := db.FindByID(ctx, "1", &found); err != nil {
		return err
	}
	logger.Info("found record by id", "id", found.ID, "name", found.Name)

	cur, err := db.FindAll(ctx)
	if err != nil {
		return err
	}
	var all []User
	if err := cur.Scan(ctx, &all); err != nil {
		return err
	}
	cur.Close()
	logger.Info("listed all records", "count", len(all))

	var filtered []User
	cur, err = db.Find(ctx, map[string]any{"name": "Alice"})
	if err != nil {
		return err
	}
	if err := cur.Scan(ctx, &filtered); err != nil {
		return err
	}
	cur.Close()
	logger.Info("filtered records", "condition", "name=Alice", "count", len(filtered))

	if err := db.UpdateByID(ctx, "1", map[string]any{
		"name":            "Alice Updated",
		"profile.city":    "Seoul",
		"profile.zipcode": "04524",
	}); err != nil {
		return err
	}
	if err := db.FindByID(ctx, "1", &found); err != nil {
		return err
	}
	logger.Info("patched record", "id", found.ID, "name", found.Name)

	n, err := db.Push(ctx, map[string]any{"id": "1"}, "tags", "editor")
	if err != nil {
		return err
	}
	logger.Info("pushed array element", "records", n)

	n, err = db.Pull(ctx, map[string]any{"id": "1"}, "tags", "admin")
	if err != nil {
		return err
	}
	logger.Info("pulled array elements", "records", n)

	if err := db.DeleteByID(ctx, "2"); err != nil {
		return err
	}
	total, err := db.Count(ctx, nil)
	if err != nil {
		return err
	}
	logger.Info("deleted record", "id", "2", "remaining", total)

	return nil
}
