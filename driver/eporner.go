package driver

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const epornerBaseURL = "https://www.eporner.com"

var epornerIDRe = regexp.MustCompile(`/video-([a-zA-Z0-9]+)/`)

// Eporner searches videos on eporner.com.
type Eporner struct{}

func NewEporner() *Eporner { return &Eporner{} }

func (e *Eporner) Name() string { return "Eporner" }

func (e *Eporner) FirstPage() int { return 1 }

func (e *Eporner) VideoURL(query string, page int) string {
	page = clampPage(page, e.FirstPage())
	return fmt.Sprintf("%s/search/%s/%d/", epornerBaseURL, url.PathEscape(strings.TrimSpace(query)), page)
}

func (e *Eporner) ParseVideos(html string) []Video {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var results []Video
	doc.Find("div.mb, div.video-box, div.thumbwook").Each(func(_ int, item *goquery.Selection) {
		link := item.Find(`a[href*="/video-"]`).First()
		if link.Length() == 0 {
			return
		}

		href := link.AttrOr("href", "")
		var id string
		if m := epornerIDRe.FindStringSubmatch(href); m != nil {
			id = m[1]
		}

		title := firstNonEmpty(
			link.AttrOr("title", ""),
			item.Find("div.title").First().Text(),
			item.Find("span.title").First().Text(),
			link.Text(),
		)
		if title == "" || strings.EqualFold(title, "untitled") {
			title = "Eporner Video"
		}

		var thumb string
		if img := item.Find("img").First(); img.Length() > 0 {
			thumb = firstNonEmpty(
				img.AttrOr("data-src", ""),
				img.AttrOr("data-original", ""),
				img.AttrOr("src", ""),
			)
		}

		duration := NormalizeDuration(item.Find(
			"span.duration, div.duration, span.time, div.time, span.length, div.length",
		).First().Text())

		var views *string
		if v := strings.TrimSpace(item.Find("span.views, div.views, span.count, div.count").First().Text()); v != "" {
			views = &v
		}

		if id == "" || href == "" || thumb == "" {
			return
		}

		videoURL := MakeAbsolute(href, epornerBaseURL)
		thumbURL := MakeAbsolute(thumb, epornerBaseURL)
		if videoURL == "" || thumbURL == "" {
			return
		}

		results = append(results, Video{
			ID:        id,
			Title:     title,
			URL:       videoURL,
			Thumbnail: thumbURL,
			Duration:  duration,
			Views:     views,
			Source:    e.Name(),
			Type:      TypeVideo,
		})
	})
	return results
}
