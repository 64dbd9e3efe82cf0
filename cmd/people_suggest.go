package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kozaktomas/photo-people/internal/people"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var peopleSuggestCmd = &cobra.Command{
	Use:   "suggest [person-id]",
	Short: "Suggest clusters that belong to a named person",
	Long: `Compare every local cluster with the faces already assigned to a named
person and list the clusters that look like the same person, largest first.

Examples:
  # Suggestions for one person
  photo-people people suggest 7f3c2a

  # Suggestions for every named person
  photo-people people suggest --all

  # Output as JSON
  photo-people people suggest 7f3c2a --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPeopleSuggest,
}

func init() {
	peopleCmd.AddCommand(peopleSuggestCmd)

	peopleSuggestCmd.Flags().Bool("all", false, "Compute suggestions for every named person")
	peopleSuggestCmd.Flags().Bool("json", false, "Output as JSON")
}

// SuggestOutput represents the suggestions for one person in CLI JSON output
type SuggestOutput struct {
	PersonID    string                    `json:"person_id"`
	Name        string                    `json:"name"`
	RunID       string                    `json:"run_id,omitempty"`
	Choices     []people.AnnotatedCluster `json:"choices,omitempty"`
	Suggestions []people.AnnotatedCluster `json:"suggestions,omitempty"`
	Error       string                    `json:"error,omitempty"`
}

func runPeopleSuggest(cmd *cobra.Command, args []string) error {
	all := mustGetBool(cmd, "all")
	jsonOutput := mustGetBool(cmd, "json")

	if all == (len(args) == 1) {
		return errors.New("specify either a person ID or --all")
	}

	ctx := context.Background()
	_, engine, _, err := setupEngine(ctx)
	if err != nil {
		return err
	}
	defer closeBackend()

	if !all {
		person, err := engine.FindNamedPerson(ctx, args[0])
		if err != nil {
			return fmt.Errorf("finding person %s: %w", args[0], err)
		}
		result, err := engine.SuggestionsAndChoicesForPerson(ctx, person)
		if err != nil {
			return fmt.Errorf("computing suggestions: %w", err)
		}
		out := SuggestOutput{
			PersonID:    person.ID,
			Name:        person.Name,
			RunID:       result.RunID,
			Choices:     result.Choices,
			Suggestions: result.Suggestions,
		}
		if jsonOutput {
			return outputJSON(out)
		}
		printSuggestions(out)
		return nil
	}

	everyone, err := engine.ReconstructPeople(ctx)
	if err != nil {
		return fmt.Errorf("reconstructing people: %w", err)
	}
	named := people.FilterNamedPeople(everyone)

	var bar *progressbar.ProgressBar
	if !jsonOutput {
		bar = progressbar.NewOptions(len(named),
			progressbar.OptionSetDescription("Computing suggestions"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("people"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionFullWidth(),
		)
	}

	outputs := make([]SuggestOutput, 0, len(named))
	for _, person := range named {
		out := SuggestOutput{PersonID: person.ID, Name: person.Name}
		result, err := engine.SuggestionsAndChoicesForPerson(ctx, person)
		switch {
		case errors.Is(err, people.ErrPersonHasNoFaces):
			out.Error = err.Error()
		case err != nil:
			return fmt.Errorf("computing suggestions for %s: %w", person.ID, err)
		default:
			out.RunID = result.RunID
			out.Choices = result.Choices
			out.Suggestions = result.Suggestions
		}
		outputs = append(outputs, out)
		if bar != nil {
			bar.Add(1)
		}
	}

	if jsonOutput {
		return outputJSON(outputs)
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PERSON\tNAME\tCHOICES\tSUGGESTIONS")
	fmt.Fprintln(w, "------\t----\t-------\t-----------")
	for _, out := range outputs {
		if out.Error != "" {
			fmt.Fprintf(w, "%s\t%s\t-\t%s\n", out.PersonID, out.Name, out.Error)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", out.PersonID, out.Name, len(out.Choices), len(out.Suggestions))
	}
	w.Flush()
	return nil
}

func printSuggestions(out SuggestOutput) {
	fmt.Printf("Person: %s (%s)\n", out.Name, out.PersonID)
	fmt.Printf("Run:    %s\n\n", out.RunID)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHOICE\tFACES\tSTATE")
	fmt.Fprintln(w, "------\t-----\t-----")
	for _, c := range out.Choices {
		state := "ignored"
		switch {
		case c.Fixed:
			state = "assigned (fixed)"
		case c.Accepted:
			state = "assigned"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", c.Cluster.ID, c.FaceCount(), state)
	}
	w.Flush()

	if len(out.Suggestions) == 0 {
		fmt.Println("\nNo suggestions")
		return
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SUGGESTION\tFACES\tSIMILARITY\tPREVIEW")
	fmt.Fprintln(w, "----------\t-----\t----------\t-------")
	for _, s := range out.Suggestions {
		preview := ""
		if len(s.PreviewFaces) > 0 {
			preview = s.PreviewFaces[0].FaceID
		}
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%s\n", s.Cluster.ID, s.FaceCount(), s.Similarity, preview)
	}
	w.Flush()
}
