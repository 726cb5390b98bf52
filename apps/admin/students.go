package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/teacherpoli/backoffice/core"
	"github.com/teacherpoli/backoffice/core/student"
)

func (cli *commandLine) addStudent(name, email, notes, addedBy string) error {
	s, err := cli.dir.Add(context.Background(), student.NewStudent{
		Name:    name,
		Email:   email,
		Notes:   notes,
		AddedBy: addedBy,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "student %s <%s> added with id %s\n", s.Name, s.Email, s.ID)
	return nil
}

// removeStudent succeeds for unknown ids.
func (cli *commandLine) removeStudent(id string) error {
	if err := cli.dir.Remove(context.Background(), id); err != nil && !core.IsNotFound(err) {
		return err
	}
	fmt.Fprintf(cli.out, "student %s removed\n", id)
	return nil
}

func (cli *commandLine) listStudents(search string) error {
	students, err := cli.dir.Search(context.Background(), search)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSTATUS\tADDED AT\tADDED BY")
	for _, s := range students {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Email, s.Status, s.AddedAt.Format("2006-01-02"), s.AddedBy)
	}
	return w.Flush()
}

func (cli *commandLine) stats() error {
	stats, err := cli.dir.Stats(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "total: %d\nactive: %d\ninactive: %d\nadded this month: %d\n",
		stats.Total, stats.Active, stats.Inactive, stats.AddedThisMonth)
	return nil
}
