// internal/app/primers.go
package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"primertail-core/primer"
	"primertail/internal/appcore"
	"primertail/internal/output"
	"primertail/internal/store"
	"primertail/internal/writers"
)

var library = writers.Library.Formats()

func newPrimersCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "primers",
		Short: "Manage the primer library",
		Long: `The primer library is a SQLite database in the data directory
(--data-dir, PRIMERTAIL_DATA_DIR). design --save and tail --save add to it.`,
	}
	cmd.AddCommand(newPrimersListCmd(e), newPrimersAddCmd(e), newPrimersGetCmd(e))
	return cmd
}

func newPrimersListCmd(e *env) *cobra.Command {
	var (
		contains string
		out      outputFlags
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored primers, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := out.check(library); err != nil {
				return err
			}
			return e.withStore(func(st *store.Store) error {
				entries, err := st.List(cmd.Context(), contains)
				if err != nil {
					return err
				}
				list := make([]primer.Primer, 0, len(entries))
				for _, en := range entries {
					list = append(list, en.Primer)
				}
				return writers.Library.Write(out.format, e.stdout, list, output.Options{Header: out.header})
			})
		},
	}
	cmd.Flags().StringVar(&contains, "contains", "", "only primers whose sequence contains this")
	out.register(cmd, library, false)
	return cmd
}

func newPrimersAddCmd(e *env) *cobra.Command {
	var (
		file        string
		description string
		conc        string
	)
	cmd := &cobra.Command{
		Use:   "add {ID SEQ | --file FILE}",
		Short: "Add or replace primers",
		Example: `  primertail primers add M13F gtaaaacgacggccagt
  primertail primers add --file oligos.tsv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []primer.Primer
			switch {
			case file != "" && len(args) > 0:
				return usagef("give ID SEQ or --file, not both")
			case file != "":
				var err error
				if list, err = primer.LoadTSV(file); err != nil {
					return err
				}
			case len(args) == 2:
				p, err := appcore.ParsePrimer(args[0], args[1])
				if err != nil {
					return usageError{err}
				}
				if p == nil {
					return usagef("empty sequence")
				}
				p.Description = description
				list = []primer.Primer{*p}
			default:
				return usagef("expected ID SEQ, got %d arguments", len(args))
			}
			if conc != "" {
				nm, err := e.settings.WithConc(conc, "", "")
				if err != nil {
					return usageError{err}
				}
				for i := range list {
					list[i].Concentration = nm.FwdNM
				}
			}
			if err := e.savePrimers(cmd.Context(), list); err != nil {
				return err
			}
			_, err := fmt.Fprintf(e.stdout, "saved %d primer(s)\n", len(list))
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&file, "file", "", `oligo list, one "seq" or "id seq" per line`)
	f.StringVar(&description, "description", "", "description of the primer")
	f.StringVar(&conc, "conc", "", `concentration, e.g. "500nM"`)
	return cmd
}

func newPrimersGetCmd(e *env) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "get ID...",
		Short: "Print stored primers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.check(library); err != nil {
				return err
			}
			return e.withStore(func(st *store.Store) error {
				list := make([]primer.Primer, 0, len(args))
				for _, id := range args {
					en, err := st.Get(cmd.Context(), id)
					if err != nil {
						return fmt.Errorf("%s: %w", id, err)
					}
					list = append(list, en.Primer)
				}
				return writers.Library.Write(out.format, e.stdout, list, output.Options{Header: out.header})
			})
		},
	}
	out.register(cmd, library, false)
	return cmd
}

// savePrimers stores every named primer of list.
func (e *env) savePrimers(ctx context.Context, list []primer.Primer) error {
	return e.withStore(func(st *store.Store) error {
		for _, p := range list {
			if p.Unnamed() {
				e.logger.Warn("not saving unnamed primer", "seq", p.Seq)
				continue
			}
			if err := st.Save(ctx, p); err != nil {
				return err
			}
		}
		e.logger.Info("saved primers", "count", len(list), "dir", e.cfg.DataDir)
		return nil
	})
}

func (e *env) withStore(fn func(*store.Store) error) error {
	st, err := e.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	return fn(st)
}
