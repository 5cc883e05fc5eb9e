package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/digital-user-report/config"
	"github.com/oksasatya/digital-user-report/internal/dashboard"
	"github.com/oksasatya/digital-user-report/internal/domain/entity"
)

var tableColumns = []dashboard.Column{
	dashboard.ColCreatedAt,
	dashboard.ColID,
	dashboard.ColName,
	dashboard.ColFullName,
	dashboard.ColIDNumber,
	dashboard.ColEmail,
	dashboard.ColPhone,
	dashboard.ColReason,
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	loc := cfg.Location()
	today := entity.FormatDate(time.Now().In(loc))

	api := flag.String("api", "http://localhost:"+cfg.Port, "report service base URL")
	token := flag.String("token", os.Getenv("OPERATOR_TOKEN"), "operator access token for annotations")
	from := flag.String("from", today, "first creation date (YYYY-MM-DD), empty for unbounded")
	to := flag.String("to", today, "last creation date (YYYY-MM-DD), empty for unbounded")
	sortBy := flag.String("sort", string(dashboard.ColCreatedAt), "sort column")
	desc := flag.Bool("desc", false, "sort descending")
	annotate := flag.String("annotate", "", "save a reason as id=text before rendering")
	timeout := flag.Duration("timeout", 20*time.Second, "request timeout")
	flag.Parse()

	col, ok := dashboard.ParseColumn(*sortBy)
	if !ok {
		log.Fatalf("unknown sort column %q", *sortBy)
	}

	client := dashboard.NewAPIClient(*api, *token, loc, *timeout)
	ctrl := dashboard.NewController(client, time.Now().In(loc), nil)
	ctx := context.Background()

	<-ctrl.SetFilter(ctx, dashboard.Filter{From: *from, To: *to})
	ctrl.SetSortColumn(col)
	if *desc {
		ctrl.SetSortColumn(col)
	}

	if *annotate != "" {
		if err := annotateRow(ctx, ctrl, *annotate); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v (kept locally only)\n", err)
		}
	}

	render(os.Stdout, ctrl.State(), loc)
}

func annotateRow(ctx context.Context, ctrl *dashboard.Controller, arg string) error {
	id, text, ok := strings.Cut(arg, "=")
	id = strings.TrimSpace(id)
	if !ok || id == "" || strings.TrimSpace(text) == "" {
		return fmt.Errorf("annotation must be id=text, got %q", arg)
	}
	for _, r := range ctrl.State().Rows {
		if r.ID.String() == id {
			ctrl.OpenModal(r)
			ctrl.SetDraft(text)
			return ctrl.Save(ctx)
		}
	}
	return fmt.Errorf("user %s is not in the current range", id)
}

func render(out *os.File, s dashboard.State, loc *time.Location) {
	if s.Err != "" {
		fmt.Fprintf(out, "error: %s (showing sample data)\n\n", s.Err)
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := []string{" "}
	for _, c := range tableColumns {
		name := string(c)
		if c == s.Sort.Column {
			if s.Sort.Desc {
				name += " v"
			} else {
				name += " ^"
			}
		}
		header = append(header, name)
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	rows := dashboard.Sorted(s, loc)
	for _, r := range rows {
		cells := []string{" "}
		if r.MissingContact() {
			cells[0] = "!"
		}
		for _, c := range tableColumns {
			cells = append(cells, dashboard.Value(s, r, c))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	_ = w.Flush()

	fmt.Fprintf(out, "\n%d rows (%s to %s), %d without contact\n",
		len(rows), orAll(s.Filter.From), orAll(s.Filter.To), dashboard.MissingContactCount(rows))
}

func orAll(d string) string {
	if d == "" {
		return "*"
	}
	return d
}
