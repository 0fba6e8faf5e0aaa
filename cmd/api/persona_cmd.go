package main

import (
	"fmt"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"
	"github.com/ndp-coder/Coustmize-ai-backend/internal/persona"

	"github.com/spf13/cobra"
)

var personaProfile models.UserProfile

// personaCmd prints the opening prompt a profile would get
var personaCmd = &cobra.Command{
	Use:   "persona",
	Short: "Print the persona prompt for a student profile",
	Long: `Resolve a student profile to its tutor persona and print the
rendered prompt. With --list, print the persona table instead.`,
	Example: `  tutor-api persona --class "11th Class" --gender Boy --stream JEE --name Ravi`,
	RunE:    runPersona,
}

var (
	listPersonas bool
	personaAge   string
)

func init() {
	flags := personaCmd.Flags()
	flags.StringVar(&personaProfile.ClassGroup, "class", "", "class group, e.g. \"5th Class\" or \"12th Class\"")
	flags.StringVar(&personaProfile.Gender, "gender", "", "Boy or Girl")
	flags.StringVar(&personaProfile.Stream, "stream", "", "JEE or NEET")
	flags.StringVar(&personaProfile.Name, "name", "Student", "student name")
	flags.StringVar(&personaAge, "age", "", "student age")
	flags.BoolVar(&listPersonas, "list", false, "list every persona and its match fields")
}

func runPersona(cmd *cobra.Command, args []string) error {
	resolver, err := persona.NewResolver()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if listPersonas {
		for _, p := range resolver.Personas() {
			fmt.Fprintf(out, "%-28s class=%q gender=%q stream=%q\n", p.Name, p.ClassGroup, p.Gender, p.Stream)
		}
		return nil
	}

	if personaAge != "" {
		personaProfile.Age = models.StringAge(personaAge)
	}
	if p, ok := resolver.Lookup(personaProfile); ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "matched %s\n", p.Name)
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "no persona matched; using the generic fallback")
	}
	fmt.Fprintln(out, resolver.Resolve(personaProfile))
	return nil
}
