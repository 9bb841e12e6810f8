// internal/app/design.go
package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

		"primertail-core/design"
	"primertail-core/oligo"
	"primertail-core/primer"
	"primertail-core/seq"
	"primertail/internal/appcore"
	"primertail/internal/cliutil"
	"primertail/internal/output"
	"primertail/internal/writers"
)

// templateFlags select the templates of design and anneal.
type templateFlags struct {
	files   []string
	inline  string
	forward string
	reverse string
}

func (t *templateFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArrayVarP(&t.files, "template", "t", nil, "template FASTA file; repeatable, '-' is stdin, gzip ok")
	f.StringVar(&t.inline, "seq", "", "template sequence given on the command line")
	f.StringVarP(&t.forward, "forward", "f", "", "forward primer, 5'->3'")
	f.StringVarP(&t.reverse, "reverse", "r", "", "reverse primer, 5'->3'")
}

// templates reads --seq or the FASTA files named by --template and args.
func (t templateFlags) templates(ctx context.Context, args []string) ([]seq.Record, error) {
	paths := append(append([]string(nil), t.files...), args...)
	switch {
	case t.inline != "" && len(paths) > 0:
		return nil, usagef("--seq cannot be combined with template files")
	case t.inline != "":
		clean, err := oligo.Validate(t.inline)
		if err != nil {
			return nil, usagef("--seq: %v", err)
		}
		return []seq.Record{{ID: "seq", Seq: clean}}, nil
	case len(paths) == 0:
		return nil, usagef("no template given (use --template FILE or --seq SEQ)")
	}
	paths, err := cliutil.ExpandPositionals(paths)
	if err != nil {
		return nil, usageError{err}
	}
	return cliutil.ReadTemplates(ctx, paths)
}

// primers parses --forward and --reverse. Unnamed primers are named by the
// designer after their length.
func (t templateFlags) primers(named bool) (fwd, rev *primer.Primer, err error) {
	fwdID, revID := "", ""
	if named {
		fwdID, revID = "forward", "reverse"
	}
	if fwd, err = appcore.ParsePrimer(fwdID, t.forward); err != nil {
		return nil, nil, usagef("--forward: %v", err)
	}
	if rev, err = appcore.ParsePrimer(revID, t.reverse); err != nil {
		return nil, nil, usagef("--reverse: %v", err)
	}
	return fwd, rev, nil
}

var amplicons = writers.Amplicons.Formats()

func newDesignCmd(e *env) *cobra.Command {
	var (
		tf   templateFlags
		th   thermoFlags
		out  outputFlags
		save bool
	)
	cmd := &cobra.Command{
		Use:   "design [flags] [FASTA...]",
		Short: "Design primers amplifying each template",
		Long: `Design a primer pair amplifying each template end to end. Primers grow from
the template ends until they reach the target Tm. Give one primer with
--forward or --reverse to design only its partner, matched to its Tm.`,
		Example: `  primertail design --seq atgactgctaacccttccttggtgttgaacaagatcgacgacatttcgttcgaaacttacgatg
  primertail design -t genes.fa --target-tm 60 -o json
  primertail design -t pUC19.fa --forward atgactgctaacccttcc --figure`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.check(amplicons); err != nil {
				return err
			}
			st, err := th.apply(cmd, e.settings)
			if err != nil {
				return err
			}
			fwd, rev, err := tf.primers(false)
			if err != nil {
				return err
			}
			if fwd != nil && rev != nil {
				return usageError{fmt.Errorf("%w; use 'primertail anneal' to run a PCR with both", design.ErrOverSpecified)}
			}
			templates, err := tf.templates(cmd.Context(), args)
			if err != nil {
				return err
			}
			list, err := st.DesignAll(cmd.Context(), templates, fwd, rev)
			if err != nil {
				return err
			}
			if save {
				if err := e.savePrimers(cmd.Context(), output.AmpliconPrimers(list)); err != nil {
					return err
				}
			}
			return writers.Amplicons.Write(out.format, e.stdout, list, e.outputOptions(st, out))
		},
	}
	tf.register(cmd)
	th.register(cmd)
	out.register(cmd, amplicons, true)
	cmd.Flags().BoolVar(&save, "save", false, "store the primers in the primer library")
	return cmd
}

func newAnnealCmd(e *env) *cobra.Command {
	var (
		tf  templateFlags
		th  thermoFlags
		out outputFlags
	)
	cmd := &cobra.Command{
		Use:   "anneal [flags] [FASTA...]",
		Short: "Run a PCR with two given primers",
		Long: `Anneal both primers to each template and report the single product they
make. Fails when the primers give no product or more than one.`,
		Example: `  primertail anneal -t pUC19.fa -f atgactgctaacccttcc -r catcgtaagtttcgaacga`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.check(amplicons); err != nil {
				return err
			}
			st, err := th.apply(cmd, e.settings)
			if err != nil {
				return err
			}
			fwd, rev, err := tf.primers(true)
			if err != nil {
				return err
			}
			templates, err := tf.templates(cmd.Context(), args)
			if err != nil {
				return err
			}
			list, err := st.DesignAll(cmd.Context(), templates, fwd, rev)
			if err != nil {
				return err
			}
			return writers.Amplicons.Write(out.format, e.stdout, list, e.outputOptions(st, out))
		},
	}
	tf.register(cmd)
	th.register(cmd)
	out.register(cmd, amplicons, true)
	_ = cmd.MarkFlagRequired("forward")
	_ = cmd.MarkFlagRequired("reverse")
	return cmd
}

func (e *env) outputOptions(st appcore.Settings, o outputFlags) output.Options {
	return output.Options{
		Header:        o.header,
		Figure:        o.figure,
		FigureOptions: st.FigureOptions(""),
		Tm:            st.TmFunc(),
	}
}
