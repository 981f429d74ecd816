package report_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/payroll/internal/domain/model"
	"github.com/okian/payroll/internal/domain/report"
)

func mustRecord(t *testing.T, id int, name, dept string, hours, rate float64) model.Record {
	t.Helper()
	rec, err := model.NewRecord(id, strings.ToLower(name)+"@example.com", name, dept,
		decimal.NewFromFloat(hours), decimal.NewFromFloat(rate))
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	return rec
}

func TestPayoutReport(t *testing.T) {
	Convey("Given the payout report", t, func() {
		gen := report.Payout{}

		Convey("When there are no records", func() {
			out := gen.Generate(nil)

			Convey("Then only a zero total is printed", func() {
				So(out, ShouldEqual, "Total payout: $0")
			})
		})

		Convey("When there are two records", func() {
			out := gen.Generate([]model.Record{
				mustRecord(t, 1, "Alice Johnson", "Marketing", 160, 50),
				mustRecord(t, 2, "Bob Smith", "Design", 150, 40),
			})

			Convey("Then names and departments are padded into columns", func() {
				So(out, ShouldEqual,
					"Employee: Alice Johnson    Department: Marketing    Payout: $8000\n"+
						"Employee: Bob Smith        Department: Design       Payout: $6000\n"+
						"Total payout: $14000")
			})
		})

		Convey("When records arrive in a given order", func() {
			out := gen.Generate([]model.Record{
				mustRecord(t, 2, "Bob", "Design", 1, 1),
				mustRecord(t, 1, "Alice", "Marketing", 1, 1),
			})

			Convey("Then the output keeps that order", func() {
				lines := strings.Split(out, "\n")
				So(lines, ShouldHaveLength, 3)
				So(lines[0], ShouldStartWith, "Employee: Bob  ")
				So(lines[1], ShouldStartWith, "Employee: Alice")
			})
		})

		Convey("When payouts have fractions", func() {
			out := gen.Generate([]model.Record{
				mustRecord(t, 1, "A", "X", 1, 0.4),
				mustRecord(t, 2, "B", "Y", 1, 0.4),
			})

			Convey("Then each line is rounded for display but the total sums exact values", func() {
				lines := strings.Split(out, "\n")
				So(lines[0], ShouldEndWith, "Payout: $0")
				So(lines[1], ShouldEndWith, "Payout: $0")
				So(lines[2], ShouldEqual, "Total payout: $1")
			})
		})

		Convey("When a payout lands exactly on a half", func() {
			cases := []struct {
				rate float64
				want string
			}{
				{0.5, "$0"},
				{1.5, "$2"},
				{2.5, "$2"},
				{4.5, "$4"},
			}

			Convey("Then it rounds to the even whole unit", func() {
				for _, tc := range cases {
					out := gen.Generate([]model.Record{mustRecord(t, 1, "A", "X", 1, tc.rate)})
					lines := strings.Split(out, "\n")
					So(lines[0], ShouldEndWith, "Payout: "+tc.want)
					So(lines[1], ShouldEqual, "Total payout: "+tc.want)
				}
			})

			Convey("Then the total rounds its exact sum the same way", func() {
				out := gen.Generate([]model.Record{
					mustRecord(t, 1, "A", "X", 1, 1.25),
					mustRecord(t, 2, "B", "Y", 1, 1.25),
				})
				So(out, ShouldEndWith, "Total payout: $2")
			})
		})

		Convey("When names contain multi-byte characters", func() {
			out := gen.Generate([]model.Record{
				mustRecord(t, 1, "Žofia", "R&D", 1, 1),
				mustRecord(t, 2, "Ann", "Ops", 1, 1),
			})

			Convey("Then padding counts characters, not bytes", func() {
				lines := strings.Split(out, "\n")
				So(lines[0], ShouldEqual, "Employee: Žofia    Department: R&D    Payout: $1")
				So(lines[1], ShouldEqual, "Employee: Ann      Department: Ops    Payout: $1")
			})
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Given the built-in registry", t, func() {
		reg := report.NewRegistry()

		Convey("Then payout is registered", func() {
			So(reg.Names(), ShouldResemble, []string{"payout"})
			gen, err := reg.Lookup("payout")
			So(err, ShouldBeNil)
			So(gen, ShouldHaveSameTypeAs, report.Payout{})
		})

		Convey("When looking up an unknown name", func() {
			_, err := reg.Lookup("foo")

			Convey("Then the error lists the available names", func() {
				So(errors.Is(err, report.ErrUnknownReport), ShouldBeTrue)
				var ue *report.UnknownReportError
				So(errors.As(err, &ue), ShouldBeTrue)
				So(ue.Name, ShouldEqual, "foo")
				So(ue.Available, ShouldResemble, []string{"payout"})
				So(err.Error(), ShouldContainSubstring, "available reports: payout")
			})
		})

		Convey("When a new report type is registered", func() {
			err := reg.Register("headcount", report.GeneratorFunc(func(records []model.Record) string {
				return "Employees: " + decimal.NewFromInt(int64(len(records))).String()
			}))

			Convey("Then it is dispatched by name without touching existing types", func() {
				So(err, ShouldBeNil)
				So(reg.Names(), ShouldResemble, []string{"headcount", "payout"})
				out, genErr := reg.Generate("headcount", []model.Record{mustRecord(t, 1, "A", "B", 1, 1)})
				So(genErr, ShouldBeNil)
				So(out, ShouldEqual, "Employees: 1")
			})
		})

		Convey("When a name is registered twice", func() {
			err := reg.Register("payout", report.Payout{})

			Convey("Then registration fails", func() {
				So(errors.Is(err, report.ErrDuplicate), ShouldBeTrue)
				So(func() { reg.MustRegister("payout", report.Payout{}) }, ShouldPanic)
			})
		})

		Convey("When registering without a generator", func() {
			So(reg.Register("empty", nil), ShouldNotBeNil)
		})

		Convey("When generating through the registry", func() {
			out, err := reg.Generate("payout", nil)
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "Total payout: $0")

			_, err = reg.Generate("bogus", nil)
			So(errors.Is(err, report.ErrUnknownReport), ShouldBeTrue)
		})
	})

	Convey("Given an empty registry", t, func() {
		reg := report.NewEmptyRegistry()
		_, err := reg.Lookup("payout")
		So(errors.Is(err, report.ErrUnknownReport), ShouldBeTrue)
		So(reg.Names(), ShouldBeEmpty)
	})

	Convey("Given the default registry", t, func() {
		So(report.Default.Names(), ShouldContain, report.PayoutName)
	})
}
