package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/zeebo/xxh3"

	"github.com/xbaseio/dbf"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print table structure and a content fingerprint",
	Long: `info prints the record count, the derived header and record lengths,
the field table, and an XXH3 fingerprint of the file contents. For
compressed files the fingerprint covers the uncompressed bytes, so it
identifies the table no matter how it is stored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo(args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(path string, out io.Writer) error {
	in, err := openInput(path)
	if err != nil {
		return err
	}
	defer in.Close()

	hash := xxh3.New()
	tee := io.TeeReader(in, hash)
	r, err := dbf.NewReader(tee, encoding)
	if err != nil {
		return err
	}

	// Drain the record region so the fingerprint covers the whole file.
	rest, err := io.Copy(io.Discard, tee)
	if err != nil {
		return err
	}

	fields := r.Fields()
	headerLen := 33 + 32*len(fields)
	recordLen := 1
	for _, f := range fields {
		recordLen += int(f.Size)
	}
	log.WithFields(logrus.Fields{"file": path, "fields": len(fields)}).Debug("parsed header")

	fmt.Fprintf(out, "records:       %d\n", r.RecordCount())
	fmt.Fprintf(out, "fields:        %d\n", len(fields))
	fmt.Fprintf(out, "header length: %d\n", headerLen)
	fmt.Fprintf(out, "record length: %d\n", recordLen)
	fmt.Fprintf(out, "file size:     %d\n", int64(headerLen)+rest)
	fmt.Fprintf(out, "xxh3:          %016x\n", hash.Sum64())
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tSIZE\tDEC")
	for _, f := range fields {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", f.Name, f.Type, f.Size, f.Decimals)
	}
	return tw.Flush()
}
