package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/document"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/observability"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

var (
	normalizeBlob bool
	normalizeOut  string
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <input.json|->",
	Short: "Normalize AI output or a stored blob into a canonical document",
	Long: `Normalize reads an AI extraction result (fullName, skills, experience, ...
in any of the shapes a model returns) and prints the canonical document the
builder would load. With --blob the input is a stored document blob instead,
repaired the way saved résumés are repaired on load.`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().BoolVar(&normalizeBlob, "blob", false, "Treat the input as a stored document blob")
	normalizeCmd.Flags().StringVarP(&normalizeOut, "out", "o", "", "Write the document to this file instead of stdout")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	var doc types.Document
	if normalizeBlob {
		doc, err = document.Decode(data)
		if err != nil {
			return err
		}
	} else {
		var candidate types.Candidate
		if err := json.Unmarshal(data, &candidate); err != nil {
			return fmt.Errorf("input is not a JSON object: %w", err)
		}
		doc = document.FromCandidate(candidate)
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintDocument(&doc)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	out = append(out, '\n')

	if normalizeOut != "" {
		if err := os.WriteFile(normalizeOut, out, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", normalizeOut, err)
		}
		return nil
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
