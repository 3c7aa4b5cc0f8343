package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jack-barr3tt/erail-engine/src/common/types"
)

const (
	totalFareSelector      = ".panel-success .tableSingleFare"
	individualFareSelector = ".panel-warning .tableSingleFare"

	msgFareParse = "Error parsing fare data"
)

// FareDocument is the part of a parsed HTML page the fare extractor needs.
type FareDocument interface {
	Find(selector string) *goquery.Selection
}

type FareTables struct {
	Total      map[string]types.TotalFare
	Individual map[string]types.FareBreakdown
}

var fareCleaner = strings.NewReplacer("₹", "", ",", "")

// ExtractFareTables reads the total and per-passenger fare tables. A missing
// table gives an empty mapping. Classes seen in only one table are added to the
// other with empty fares so both mappings share the same keys.
func ExtractFareTables(doc FareDocument) FareTables {
	tables := FareTables{
		Total:      extractTotalFares(doc.Find(totalFareSelector).First()),
		Individual: extractIndividualFares(doc.Find(individualFareSelector).First()),
	}

	for class := range tables.Individual {
		if _, ok := tables.Total[class]; !ok {
			tables.Total[class] = types.TotalFare{}
		}
	}
	for class := range tables.Total {
		if _, ok := tables.Individual[class]; !ok {
			tables.Individual[class] = newFareBreakdown()
		}
	}

	return tables
}

func headerClasses(table *goquery.Selection) []string {
	var classes []string
	table.Find("tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
		if i > 0 {
			classes = append(classes, strings.TrimSpace(th.Text()))
		}
	})
	return classes
}

func extractTotalFares(table *goquery.Selection) map[string]types.TotalFare {
	totals := make(map[string]types.TotalFare)
	if table.Length() == 0 {
		return totals
	}

	classes := headerClasses(table)
	rows := table.Find("tr")

	rows.Eq(1).Find("td").Each(func(i int, td *goquery.Selection) {
		if i == 0 || i > len(classes) || classes[i-1] == "" {
			return
		}
		totals[classes[i-1]] = types.TotalFare{General: fareOrZero(td.Text())}
	})

	rows.Eq(2).Find("td").Each(func(i int, td *goquery.Selection) {
		if i == 0 || i > len(classes) {
			return
		}
		fare, ok := totals[classes[i-1]]
		if !ok {
			return
		}
		fare.Tatkal = fareOrNull(td.Text())
		totals[classes[i-1]] = fare
	})

	return totals
}

func newFareBreakdown() types.FareBreakdown {
	return types.FareBreakdown{
		General:      intPtr(0),
		Child:        intPtr(0),
		SeniorFemale: intPtr(0),
		SeniorMale:   intPtr(0),
	}
}

func extractIndividualFares(table *goquery.Selection) map[string]types.FareBreakdown {
	fares := make(map[string]types.FareBreakdown)
	if table.Length() == 0 {
		return fares
	}

	classes := headerClasses(table)
	for _, class := range classes {
		fares[class] = newFareBreakdown()
	}

	table.Find("tr").Each(func(rowIndex int, row *goquery.Selection) {
		if rowIndex == 0 {
			return
		}

		cells := row.Find("td")
		label := strings.TrimSpace(cells.First().Text())

		cells.Each(func(i int, td *goquery.Selection) {
			if i == 0 || i > len(classes) {
				return
			}
			fare, ok := fares[classes[i-1]]
			if !ok {
				return
			}

			value := fareOrZero(td.Text())
			switch label {
			case "Adult":
				fare.General = value
			case "Child":
				fare.Child = value
			case "Adult Tatkal":
				fare.Tatkal = value
			case "Child Tatkal":
				fare.ChildTatkal = value
			case "Sen. Female":
				fare.SeniorFemale = value
			case "Sen. Male":
				fare.SeniorMale = value
			default:
				return
			}
			fares[classes[i-1]] = fare
		})
	})

	return fares
}

// fareOrZero maps "-" to null and anything without a leading integer to 0.
func fareOrZero(text string) *int {
	cleaned := fareCleaner.Replace(strings.TrimSpace(text))
	if cleaned == "-" {
		return nil
	}
	n, ok := leadingInt(cleaned)
	if !ok {
		n = 0
	}
	return intPtr(n)
}

// fareOrNull maps "-", a missing integer and 0 to null. Upstream tatkal cells
// have always been read this way, unlike the general row.
func fareOrNull(text string) *int {
	cleaned := fareCleaner.Replace(strings.TrimSpace(text))
	if cleaned == "-" {
		return nil
	}
	n, ok := leadingInt(cleaned)
	if !ok || n == 0 {
		return nil
	}
	return intPtr(n)
}

// maxFareDigits bounds a fare cell; longer digit runs are treated as unparsable.
const maxFareDigits = 9

// leadingInt parses the digits at the start of s, ignoring whatever follows them.
// Fares are never negative, so a sign makes the cell unparsable.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)

	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		if digits == maxFareDigits {
			return 0, false
		}
		n = n*10 + int(s[digits]-'0')
		digits++
	}
	return n, digits > 0
}

func intPtr(n int) *int {
	return &n
}

func trainName(doc FareDocument, trainNo string) string {
	name := strings.TrimSpace(doc.Find("h1").Text())
	if name == "" {
		name = fmt.Sprintf("Train %s", trainNo)
	}
	return strings.Replace(name, " Fare", "", 1)
}

func ParseFarePage(raw string, query types.FareQuery, now time.Time) types.Result[types.FareDetails] {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return types.Fail[types.FareDetails](types.MalformedUpstream, msgFareParse, err, now)
	}

	tables := ExtractFareTables(doc)

	return types.Ok(types.FareDetails{
		TrainNumber: query.TrainNo,
		TrainName:   trainName(doc, query.TrainNo),
		From:        query.From,
		To:          query.To,
		PassengerCounts: types.PassengerCounts{
			Adult:        query.Adult,
			Child:        query.Child,
			SeniorFemale: query.SeniorFemale,
			SeniorMale:   query.SeniorMale,
			Total:        query.Adult + query.Child + query.SeniorFemale + query.SeniorMale,
		},
		IndividualFares: tables.Individual,
		TotalFares:      tables.Total,
		Notes:           types.DefaultPassengerNotes,
		SourceURL:       query.SourceURL,
	}, now)
}
