package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const dateLayout = "02/01/2006"

type card struct {
	Date string
	Name string
	Link string
}

func parseCards(html string) ([]card, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse class cards: %w", err)
	}

	var cards []card
	doc.Find(".card.card-default").Each(func(_ int, sel *goquery.Selection) {
		link, _ := sel.Find("a").First().Attr("href")
		cards = append(cards, card{
			Date: strings.TrimSpace(sel.Find("p.card-small-text-11").First().Text()),
			Name: strings.TrimSpace(sel.Find("h4").First().Text()),
			Link: link,
		})
	})
	return cards, nil
}

// findSession returns the first card dated day. Card dates look like
// "15/03/2024 - 19:00"; only the part before " - " is compared.
func findSession(cards []card, day time.Time) (Session, bool) {
	want := day.Format(dateLayout)
	for _, c := range cards {
		date, _, _ := strings.Cut(c.Date, " - ")
		if date != want {
			continue
		}
		y, m, d := day.Date()
		return Session{
			Link: c.Link,
			Name: c.Name,
			Date: time.Date(y, m, d, 0, 0, 0, 0, day.Location()),
		}, true
	}
	return Session{}, false
}
