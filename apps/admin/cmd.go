package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/teacherpoli/backoffice/core"
	"github.com/teacherpoli/backoffice/core/bonus"
	"github.com/teacherpoli/backoffice/core/student"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	out       io.Writer
	appName   string
	secretKey string
	tokenTTL  time.Duration
	admins    core.AdminChecker
	catalog   *bonus.Service
	dir       *student.Directory
	migrate   func(command string, args ...string) error
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  addstudent -name NAME -email EMAIL [-notes NOTES] -by ADMIN_EMAIL - enroll a student")
	fmt.Fprintln(cli.out, "  removestudent -id ID                                           - remove a student")
	fmt.Fprintln(cli.out, "  students [-search QUERY]                                       - list or search students")
	fmt.Fprintln(cli.out, "  stats                                                          - roster statistics")
	fmt.Fprintln(cli.out, "  bonuses                                                        - list the bonus catalog")
	fmt.Fprintln(cli.out, "  seed                                                           - replace the catalog with the default one")
	fmt.Fprintln(cli.out, "  token -email ADMIN_EMAIL                                       - issue an API token for an admin")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]                                         - run database migrations (up, down, status...)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ContinueOnError)
	addStudentName := addStudentCmd.String("name", "", "The student's full name.")
	addStudentEmail := addStudentCmd.String("email", "", "The student's email.")
	addStudentNotes := addStudentCmd.String("notes", "", "Optional notes.")
	addStudentBy := addStudentCmd.String("by", "", "The email of the admin enrolling the student.")

	removeStudentCmd := flag.NewFlagSet("removestudent", flag.ContinueOnError)
	removeStudentID := removeStudentCmd.String("id", "", "The student's ID.")

	studentsCmd := flag.NewFlagSet("students", flag.ContinueOnError)
	studentsSearch := studentsCmd.String("search", "", "Case-insensitive match on name or email.")

	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenEmail := tokenCmd.String("email", "", "An admin email.")

	for _, fs := range []*flag.FlagSet{addStudentCmd, removeStudentCmd, studentsCmd, tokenCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *addStudentBy == "" || !cli.admins.IsAdmin(*addStudentBy) {
			addStudentCmd.Usage()
			return errHelp
		}
		return cli.addStudent(*addStudentName, *addStudentEmail, *addStudentNotes, *addStudentBy)
	case "removestudent":
		if err := removeStudentCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *removeStudentID == "" {
			removeStudentCmd.Usage()
			return errHelp
		}
		return cli.removeStudent(*removeStudentID)
	case "students":
		if err := studentsCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.listStudents(*studentsSearch)
	case "stats":
		return cli.stats()
	case "bonuses":
		return cli.listBonuses()
	case "seed":
		return cli.seed()
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *tokenEmail == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(*tokenEmail)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2], args[3:]...)
	default:
		cli.printUsage()
		return errHelp
	}
}
