package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gh-talent-scout/internal/models"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Interactively create a starter job requirement JSON file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path := "job.json"
		if len(args) == 1 {
			path = args[0]
		}
		return runInit(path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(path string) error {
	role, err := (&promptui.Prompt{Label: "Role title"}).Run()
	if err != nil {
		return err
	}

	requiredRaw, err := (&promptui.Prompt{Label: "Required skills (comma separated)"}).Run()
	if err != nil {
		return err
	}

	preferredRaw, err := (&promptui.Prompt{Label: "Preferred skills (comma separated, optional)"}).Run()
	if err != nil {
		return err
	}

	locationRaw, err := (&promptui.Prompt{Label: "Location preference (optional)"}).Run()
	if err != nil {
		return err
	}

	_, seniority, err := (&promptui.Select{
		Label: "Seniority",
		Items: []string{models.SeniorityAny, models.SeniorityJunior, models.SeniorityMid, models.SenioritySenior, models.SeniorityLead},
	}).Run()
	if err != nil {
		return err
	}

	minExpRaw, err := (&promptui.Prompt{
		Label:   "Minimum experience years",
		Default: "0",
		Validate: func(s string) error {
			_, err := strconv.Atoi(s)
			return err
		},
	}).Run()
	if err != nil {
		return err
	}
	minExp, _ := strconv.Atoi(minExpRaw)

	job := models.JobRequirement{
		Role:               strings.TrimSpace(role),
		RequiredSkills:     splitList(requiredRaw),
		PreferredSkills:    splitList(preferredRaw),
		MinExperienceYears: minExp,
		Seniority:          seniority,
	}
	if loc := strings.TrimSpace(locationRaw); loc != "" {
		job.LocationPreferences = []string{loc}
	}

	if err := job.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(&job, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Printf("wrote %s\n", path)
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
