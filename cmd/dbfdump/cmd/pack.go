package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xbaseio/dbf"
)

// packCmd represents the pack command
var packCmd = &cobra.Command{
	Use:   "pack <src> <dst>",
	Short: "Copy live records into a fresh compact file",
	Long: `pack rewrites a table the way the dBase PACK command does: records
flagged deleted are dropped for good and the survivors are written to
a fresh file with a current header and an exact record count.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPack(args[0], args[1], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(packCmd)
}

func runPack(src, dst string, stdout io.Writer) error {
	in, err := openInput(src)
	if err != nil {
		return err
	}
	defer in.Close()

	r, err := dbf.NewReader(in, encoding)
	if err != nil {
		return err
	}
	records, err := r.ReadAll()
	if err != nil {
		return err
	}

	out, err := openOutput(dst)
	if err != nil {
		return err
	}
	if err := dbf.WriteAll(out, r.Fields(), records, encoding); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"declared": r.RecordCount(),
		"live":     len(records),
	}).Debug("packed table")
	fmt.Fprintf(stdout, "%d records copied, %d dropped\n", len(records), int(r.RecordCount())-len(records))
	return nil
}
