package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/deployhq/internal/guard"
	"github.com/dmitrijs2005/deployhq/internal/models"
)

var (
	errStillLoading = errors.New("session is still loading, try again")
	errAccessDenied = errors.New("access denied")
)

var builderRoute = guard.Route{RequiredRole: models.RoleBuilder}

// authorize runs the route guard for r and returns the current user when the
// view may be shown.
func (a *App) authorize(r guard.Route) (models.User, error) {
	d := guard.Decide(guard.FromSession(a.session.State()), r)
	switch d.Outcome {
	case guard.Wait:
		return models.User{}, errStillLoading
	case guard.Redirect:
		return models.User{}, fmt.Errorf("%w, go to %s", errAccessDenied, d.Path)
	}
	u, _ := a.session.CurrentUser()
	return u, nil
}

// Submit walks a builder through the agent submission form.
func (a *App) Submit(ctx context.Context) error {
	u, err := a.authorize(builderRoute)
	if err != nil {
		return err
	}

	p := models.SubmissionPayload{
		SubmittedBy: u.ID,
		BuilderInfo: models.BuilderInfo{Name: u.Name, Email: u.Email, Company: u.Company},
	}

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Agent name *", &p.Name},
		{"Short description *", &p.Description},
		{"Detailed description", &p.LongDescription},
		{"Type (" + agentTypeValues() + ")", &p.Type},
		{"Category", &p.Category},
		{"API endpoint URL *", &p.APIURL},
		{"API key", &p.APIKey},
	}
	for _, f := range fields {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}

	priceText, err := getSimpleText(a.reader, "Price [0]", a.out)
	if err != nil {
		return err
	}
	if priceText != "" {
		if p.Pricing.Price, err = strconv.ParseFloat(priceText, 64); err != nil {
			return fmt.Errorf("invalid price %q", priceText)
		}
	}

	priceType, err := getSimpleText(a.reader, "Price type ("+priceTypeValues()+") [month]", a.out)
	if err != nil {
		return err
	}
	p.Pricing.PriceType = models.PriceMonth
	if priceType != "" {
		p.Pricing.PriceType = models.PriceType(priceType)
	}

	if p.Tags, err = getList(a.reader, "Tags", a.out); err != nil {
		return err
	}
	if p.Features, err = getList(a.reader, "Key features", a.out); err != nil {
		return err
	}

	a.println("Submitting...")
	id, err := a.catalog.SubmitAgent(ctx, p)
	if err != nil {
		return err
	}
	a.printf("Agent %q submitted successfully! Submission ID: %s\n", p.Name, id)
	return nil
}

// Mine lists the builder's own submissions.
func (a *App) Mine(context.Context) error {
	u, err := a.authorize(builderRoute)
	if err != nil {
		return err
	}
	a.printSubmissions(a.catalog.SubmissionsByBuilder(u.Email))
	return nil
}

func (a *App) Stats(context.Context) error {
	u, err := a.authorize(builderRoute)
	if err != nil {
		return err
	}
	st := a.catalog.BuilderStats(u.Email)
	a.printf("Total agents:  %d\n", st.Total)
	a.printf("Published:     %d\n", st.Published)
	a.printf("Pending:       %d\n", st.Pending)
	a.printf("Revenue:       $%.2f\n", st.Revenue)
	return nil
}

// Catalog lists every submission.
func (a *App) Catalog(context.Context) error {
	if _, err := a.authorize(guard.Route{}); err != nil {
		return err
	}
	a.printSubmissions(a.catalog.Submissions())
	return nil
}

func (a *App) Show(_ context.Context, id string) error {
	if _, err := a.authorize(guard.Route{}); err != nil {
		return err
	}
	s, err := a.catalog.Submission(id)
	if err != nil {
		return err
	}

	a.printf("%s  [%s]\n", s.Name, s.Status)
	a.printf("  id:          %s\n", s.ID)
	a.printf("  description: %s\n", s.Description)
	if s.LongDescription != "" {
		a.printf("  details:     %s\n", s.LongDescription)
	}
	a.printf("  type:        %s\n", s.Type)
	a.printf("  category:    %s\n", s.Category)
	a.printf("  api url:     %s\n", s.APIURL)
	a.printf("  pricing:     %s\n", formatPricing(s.Pricing))
	if len(s.Tags) > 0 {
		a.printf("  tags:        %s\n", strings.Join(s.Tags, ", "))
	}
	if len(s.Features) > 0 {
		a.printf("  features:    %s\n", strings.Join(s.Features, ", "))
	}
	a.printf("  builder:     %s <%s>\n", s.BuilderInfo.Name, s.BuilderInfo.Email)
	a.printf("  submitted:   %s\n", s.SubmittedAt)
	return nil
}

func (a *App) SetStatus(ctx context.Context, id, status string) error {
	if _, err := a.authorize(builderRoute); err != nil {
		return err
	}
	st := models.Status(strings.ToLower(status))
	if !st.Valid() {
		return fmt.Errorf("unknown status %q", status)
	}
	a.catalog.UpdateSubmissionStatus(ctx, id, st)
	a.println("OK")
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if _, err := a.authorize(builderRoute); err != nil {
		return err
	}
	a.catalog.DeleteSubmission(ctx, id)
	a.println("OK")
	return nil
}

func (a *App) printSubmissions(subs []models.AgentSubmission) {
	if len(subs) == 0 {
		a.println("No submissions yet.")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tPRICING\tBUILDER")
	for _, s := range subs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Status, formatPricing(s.Pricing), s.BuilderInfo.Email)
	}
	_ = tw.Flush()
}

func formatPricing(p models.Pricing) string {
	if p.PriceType == models.PriceFree {
		return "free"
	}
	return fmt.Sprintf("$%g/%s", p.Price, p.PriceType)
}

func agentTypeValues() string {
	vals := make([]string, len(models.AgentTypes))
	for i, t := range models.AgentTypes {
		vals[i] = t.Value
	}
	return strings.Join(vals, "|")
}

func priceTypeValues() string {
	vals := make([]string, len(models.PriceTypes))
	for i, t := range models.PriceTypes {
		vals[i] = string(t)
	}
	return strings.Join(vals, "|")
}
