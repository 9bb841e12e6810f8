// internal/app/tail.go
package app

import (
	"github.com/spf13/cobra"

	"primertail/internal/output"
	"primertail/internal/plan"
	"primertail/internal/writers"
)

var fragments = writers.Fragments.Formats()

func newTailCmd(e *env) *cobra.Command {
	var (
		planPath string
		overlap  int
		maxLink  int
		circular bool
		save     bool
		th       thermoFlags
		out      outputFlags
	)
	cmd := &cobra.Command{
		Use:   "tail --plan PLAN.yaml",
		Short: "Design and tail primers so consecutive fragments overlap",
		Long: `Read an assembly plan, design primers for every template fragment and add
5' tails so each PCR product overlaps its neighbours by --overlap bp. Fixed
fragments up to --max-link bp between two templates are carried in the tails.
Flags override the plan, which overrides the configuration.`,
		Example: `  primertail tail --plan assembly.yaml
  primertail tail --plan assembly.yaml --circular -o primers > order.fa`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := out.check(fragments); err != nil {
				return err
			}
			st, err := th.apply(cmd, e.settings)
			if err != nil {
				return err
			}
			p, err := plan.Load(planPath)
			if err != nil {
				return err
			}
			if p.Overlap != 0 {
				st.Overlap = p.Overlap
			}
			if p.MaxLink != 0 {
				st.MaxLink = p.MaxLink
			}
			changed := cmd.Flags().Changed
			if changed("overlap") {
				if overlap < 0 {
					return usagef("--overlap must be >= 0, got %d", overlap)
				}
				st.Overlap = overlap
			}
			if changed("max-link") {
				if maxLink < 0 {
					return usagef("--max-link must be >= 0, got %d", maxLink)
				}
				st.MaxLink = maxLink
			}
			circ := p.Circular || circular

			frags, err := p.Build(cmd.Context(), st, st.Threads)
			if err != nil {
				return err
			}
			tailed, err := st.Tail(frags, circ)
			if err != nil {
				return err
			}
			if save {
				if err := e.savePrimers(cmd.Context(), output.FragmentPrimers(tailed)); err != nil {
					return err
				}
			}
			set := writers.FragmentSet{Fragments: tailed, Circular: circ}
			return writers.Fragments.Write(out.format, e.stdout, set, e.outputOptions(st, out))
		},
	}
	f := cmd.Flags()
	f.StringVarP(&planPath, "plan", "p", "", "assembly plan (YAML)")
	f.IntVar(&overlap, "overlap", 0, "overlap between neighbouring fragments in bp (default 35)")
	f.IntVar(&maxLink, "max-link", 0, "longest fixed fragment carried in primer tails (default 40)")
	f.BoolVar(&circular, "circular", false, "also join the last fragment to the first")
	f.BoolVar(&save, "save", false, "store the tailed primers in the primer library")
	th.register(cmd)
	out.register(cmd, fragments, true)
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}
