package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/marcus/tailor/internal/models"
	"github.com/marcus/tailor/internal/output"
	"github.com/spf13/cobra"
)

var (
	errFirstNameRequired = errors.New("first name is required")
	errLastNameRequired  = errors.New("last name is required")
	errEmailInvalid      = errors.New("enter a valid email address")
	errGenderInvalid     = errors.New("gender must be M or F")
)

// profileForm holds the editable profile fields
type profileForm struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Gender     string
	Department string
}

func newProfileForm(p *models.UserProfile) *profileForm {
	return &profileForm{
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Email:      p.Email,
		Phone:      p.Phone,
		Gender:     string(p.Gender),
		Department: p.Department,
	}
}

func requireText(err error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return err
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return errEmailInvalid
	}
	return nil
}

func validateGender(s string) error {
	switch models.Gender(s) {
	case "", models.GenderMale, models.GenderFemale:
		return nil
	}
	return errGenderInvalid
}

// Validate checks the fields the form validates interactively
func (f *profileForm) Validate() error {
	return errors.Join(
		requireText(errFirstNameRequired)(f.FirstName),
		requireText(errLastNameRequired)(f.LastName),
		validateEmail(f.Email),
		validateGender(f.Gender),
	)
}

// Apply copies the form onto a copy of p
func (f *profileForm) Apply(p models.UserProfile) models.UserProfile {
	p.FirstName = strings.TrimSpace(f.FirstName)
	p.LastName = strings.TrimSpace(f.LastName)
	p.Email = strings.TrimSpace(f.Email)
	p.Phone = strings.TrimSpace(f.Phone)
	p.Gender = models.Gender(f.Gender)
	p.Department = strings.TrimSpace(f.Department)
	return p
}

func (f *profileForm) build() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Value(&f.FirstName).
				Validate(requireText(errFirstNameRequired)),
			huh.NewInput().
				Title("Last name").
				Value(&f.LastName).
				Validate(requireText(errLastNameRequired)),
			huh.NewInput().
				Title("Email").
				Value(&f.Email).
				Placeholder("name@example.com").
				Validate(validateEmail),
			huh.NewInput().
				Title("Phone").
				Value(&f.Phone),
			huh.NewSelect[string]().
				Title("Gender").
				Options(
					huh.NewOption("Male", string(models.GenderMale)),
					huh.NewOption("Female", string(models.GenderFemale)),
				).
				Value(&f.Gender),
			huh.NewInput().
				Title("Department").
				Value(&f.Department),
		).Title("Edit Profile"),
	).WithTheme(huh.ThemeDracula())
}

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"me"},
	Short:   "Show or edit your profile",
	GroupID: "account",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		ctx, cancel := commandContext()
		defer cancel()

		p, err := newClient(settings).Profile(ctx)
		if err != nil {
			return reportError(err, "Failed to load profile")
		}
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(p)
		}
		fmt.Print(output.FormatProfile(p))
		return nil
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit your profile",
	Long: `Edit your profile in an interactive form. Passing any field flag skips
the form and updates just those fields.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		ctx, cancel := commandContext()
		defer cancel()

		api := newClient(settings)
		current, err := api.Profile(ctx)
		if err != nil {
			return reportError(err, "Failed to load profile")
		}

		form := newProfileForm(current)
		if profileFlagsChanged(cmd) {
			applyProfileFlags(cmd, form)
		} else {
			// The form can sit open past the request timeout.
			cancel()
			if err := form.build().Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Println("Cancelled")
					return nil
				}
				return err
			}
			ctx, cancel = commandContext()
			defer cancel()
		}
		if err := form.Validate(); err != nil {
			output.Error("%v", err)
			return err
		}

		updated := form.Apply(*current)
		saved, err := api.UpdateProfile(ctx, &updated)
		recordProfileUpdate(ctx, &updated, err)
		if err != nil {
			return reportError(err, "Failed to update profile")
		}
		output.Success("profile updated")
		fmt.Print(output.FormatProfile(saved))
		return nil
	},
}

var profileFlags = []string{"first-name", "last-name", "email", "phone", "gender", "department"}

func profileFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range profileFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func applyProfileFlags(cmd *cobra.Command, f *profileForm) {
	fields := map[string]*string{
		"first-name": &f.FirstName,
		"last-name":  &f.LastName,
		"email":      &f.Email,
		"phone":      &f.Phone,
		"gender":     &f.Gender,
		"department": &f.Department,
	}
	for name, dst := range fields {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	f.Gender = strings.ToUpper(f.Gender)
}

func recordProfileUpdate(ctx context.Context, p *models.UserProfile, opErr error) {
	store, err := openHistory()
	if err != nil {
		slog.Warn("profile: history unavailable", "err", err)
		return
	}
	defer store.Close()

	e := models.HistoryEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Action:    models.HistoryProfileUpdate,
		RowID:     p.ID,
		Detail:    fmt.Sprintf("%s %s <%s>", p.FirstName, p.LastName, p.Email),
		OK:        opErr == nil,
	}
	if opErr != nil {
		e.Error = opErr.Error()
	}
	if err := store.Record(ctx, e); err != nil {
		slog.Warn("profile: record history", "err", err)
	}
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileEditCmd)

	profileShowCmd.Flags().Bool("json", false, "JSON output")

	profileEditCmd.Flags().String("first-name", "", "First name")
	profileEditCmd.Flags().String("last-name", "", "Last name")
	profileEditCmd.Flags().String("email", "", "Email address")
	profileEditCmd.Flags().String("phone", "", "Phone number")
	profileEditCmd.Flags().String("gender", "", "Gender: M or F")
	profileEditCmd.Flags().String("department", "", "Department")
}
