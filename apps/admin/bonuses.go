package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	echoapi "github.com/teacherpoli/backoffice/apps/api/echo"
	"github.com/teacherpoli/backoffice/core"
)

func (cli *commandLine) listBonuses() error {
	catalog, err := cli.catalog.List(context.Background())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTYPE\tLESSONS\tDURATION")
	for _, res := range catalog {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", res.ID, res.Title, res.Type, res.TotalLessons, res.TotalDuration)
	}
	return w.Flush()
}

func (cli *commandLine) seed() error {
	if err := cli.catalog.Reset(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "catalog reset to the default bonuses")
	return nil
}

// token prints a bearer token for the admin API.
func (cli *commandLine) token(email string) error {
	if !cli.admins.IsAdmin(email) {
		return core.NewValidationError(nil, core.FieldError{Field: "email", Error: "not an admin"})
	}
	ttl := cli.tokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token, err := echoapi.GenerateToken(cli.secretKey, echoapi.NewAdminClaims(email, cli.appName, ttl))
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, token)
	return nil
}
