package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/tarefas-api/internal/api"
	"github.com/phrazzld/tarefas-api/internal/service/auth"
	"github.com/phrazzld/tarefas-api/internal/store"
)

type dbCommand func(ctx context.Context, env *environment, args []string, out io.Writer) error

var dbCommands = map[string]dbCommand{
	"import":     runImport,
	"duplicates": runDuplicates,
	"dedupe":     runDedupe,
	"list":       runList,
}

func runImport(ctx context.Context, env *environment, _ []string, out io.Writer) error {
	inserted, err := env.importer.Run(ctx)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	_, err = fmt.Fprintf(out, "Tarefas inseridas: %d\n", inserted)
	return err
}

func runDuplicates(ctx context.Context, env *environment, _ []string, out io.Writer) error {
	dups, err := env.maintenance.ReportDuplicates(ctx)
	if err != nil {
		return err
	}
	return printDuplicates(out, dups)
}

func runDedupe(ctx context.Context, env *environment, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("dedupe", flag.ContinueOnError)
	fs.SetOutput(out)
	dryRun := fs.Bool("dry-run", false, "only report what would be removed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dups, err := env.maintenance.ReportDuplicates(ctx)
	if err != nil {
		return err
	}
	if err := printDuplicates(out, dups); err != nil || len(dups) == 0 || *dryRun {
		return err
	}

	removed, err := env.maintenance.RemoveDuplicates(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Duplicatas removidas: %d\n", removed)
	return err
}

func runList(ctx context.Context, env *environment, _ []string, out io.Writer) error {
	w := bufio.NewWriter(out)
	for skip := 0; ; skip += store.MaxLimit {
		page, err := env.tasks.ListTasks(ctx, store.TaskFilter{Skip: skip, Limit: store.MaxLimit})
		if err != nil {
			return err
		}
		for _, t := range page {
			fmt.Fprintf(w, "%d\t%s\t%s\n", t.ID, t.Title, api.FormatEstado(t.State))
		}
		if len(page) < store.MaxLimit {
			break
		}
	}
	return w.Flush()
}

func printDuplicates(out io.Writer, dups []store.DuplicateTitle) error {
	if len(dups) == 0 {
		_, err := fmt.Fprintln(out, "Nenhuma duplicata encontrada!")
		return err
	}

	w := bufio.NewWriter(out)
	fmt.Fprintln(w, "Tarefas duplicadas encontradas:")
	for _, d := range dups {
		fmt.Fprintf(w, "Título: %s - Quantidade: %d\n", d.Title, d.Count)
	}
	return w.Flush()
}

// runHash reads one password per line from stdin and prints its hash.
func runHash(args []string, stdin io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	fs.SetOutput(out)
	cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	if err := fs.Parse(args); err != nil {
		return err
	}

	hasher := auth.NewBcryptHasher(*cost)
	scanner := bufio.NewScanner(stdin)
	hashed := 0
	for scanner.Scan() {
		password := strings.TrimRight(scanner.Text(), "\r")
		if password == "" {
			continue
		}
		hash, err := hasher.Hash(password)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, hash); err != nil {
			return err
		}
		hashed++
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if hashed == 0 {
		return errors.New("no password read from stdin")
	}
	return nil
}
