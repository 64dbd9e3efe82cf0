package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kozaktomas/photo-people/internal/facematch"
	"github.com/kozaktomas/photo-people/internal/people"
	"github.com/spf13/cobra"
)

var peopleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reconstructed people",
	Long: `List all people: named cluster groups first, then unnamed clusters
with enough visible faces. Each group is ordered by the number of files the
person appears in.

Examples:
  # List everybody
  photo-people people list

  # Only named people
  photo-people people list --named

  # Search by name (case and diacritics insensitive)
  photo-people people list --name jiri

  # Output as JSON
  photo-people people list --json`,
	Args: cobra.NoArgs,
	RunE: runPeopleList,
}

func init() {
	peopleCmd.AddCommand(peopleListCmd)

	peopleListCmd.Flags().Bool("named", false, "Only list named people")
	peopleListCmd.Flags().String("name", "", "Only list people whose name contains this text")
	peopleListCmd.Flags().Bool("json", false, "Output as JSON")
}

// PersonOutput represents a person in CLI JSON output
type PersonOutput struct {
	ID            string      `json:"id"`
	Kind          people.Kind `json:"kind"`
	Name          string      `json:"name,omitempty"`
	FileCount     int         `json:"file_count"`
	DisplayFaceID string      `json:"display_face_id"`
	DisplayFileID string      `json:"display_file_id"`
}

func runPeopleList(cmd *cobra.Command, args []string) error {
	namedOnly := mustGetBool(cmd, "named")
	nameQuery := mustGetString(cmd, "name")
	jsonOutput := mustGetBool(cmd, "json")

	ctx := context.Background()
	_, engine, _, err := setupEngine(ctx)
	if err != nil {
		return err
	}
	defer closeBackend()

	all, err := engine.ReconstructPeople(ctx)
	if err != nil {
		return fmt.Errorf("reconstructing people: %w", err)
	}
	if namedOnly {
		named := people.FilterNamedPeople(all)
		all = make([]people.Person, len(named))
		for i := range named {
			all[i] = named[i]
		}
	}

	output := make([]PersonOutput, 0, len(all))
	for _, p := range all {
		if nameQuery != "" && !facematch.NameMatches(people.Name(p), nameQuery) {
			continue
		}
		info := p.Info()
		output = append(output, PersonOutput{
			ID:            info.ID,
			Kind:          p.Kind(),
			Name:          people.Name(p),
			FileCount:     len(info.FileIDs),
			DisplayFaceID: info.DisplayFaceID,
			DisplayFileID: info.DisplayFile.ID,
		})
	}

	if jsonOutput {
		return outputJSON(output)
	}

	if len(output) == 0 {
		fmt.Println("No people found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tNAME\tFILES\tDISPLAY FACE")
	fmt.Fprintln(w, "--\t----\t----\t-----\t------------")
	for _, p := range output {
		name := p.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", p.ID, p.Kind, name, p.FileCount, p.DisplayFaceID)
	}
	w.Flush()

	fmt.Printf("\n%d people\n", len(output))
	return nil
}
