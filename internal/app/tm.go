// internal/app/tm.go
package app

import (
	"github.com/spf13/cobra"

	"primertail/internal/output"
	"primertail/internal/writers"
)

var tms = writers.Tms.Formats()

func newTmCmd(e *env) *cobra.Command {
	var (
		formula string
		conc    string
		salt    string
		out     outputFlags
	)
	cmd := &cobra.Command{
		Use:     "tm SEQ...",
		Short:   "Print the melting temperature of oligos",
		Example: `  primertail tm atgactgctaacccttcc catcgtaagtttcgaacga --formula santalucia`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := out.check(tms); err != nil {
				return err
			}
			st, err := e.settings.WithConc(conc, "", salt)
			if err != nil {
				return usageError{err}
			}
			if st, err = st.WithFormula(formula); err != nil {
				return usageError{err}
			}
			list, err := st.TmAll(args)
			if err != nil {
				return usageError{err}
			}
			return writers.Tms.Write(out.format, e.stdout, list, output.Options{Header: out.header})
		},
	}
	f := cmd.Flags()
	f.StringVar(&formula, "formula", "", "Tm formula: bresluc, breslauer86, santalucia or basic")
	f.StringVar(&conc, "conc", "", `primer concentration, e.g. "500nM"`)
	f.StringVar(&salt, "salt", "", `monovalent salt, e.g. "50mM"`)
	out.register(cmd, tms, false)
	return cmd
}
