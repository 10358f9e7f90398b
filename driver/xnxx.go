package driver

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const xnxxBaseURL = "https://www.xnxx.com"

var (
	xnxxIDRe       = regexp.MustCompile(`/video-([a-z0-9]+)/`)
	xnxxDurationRe = regexp.MustCompile(`(\d+:\d+)`)
)

// Xnxx searches videos on xnxx.com. The query is a path segment and
// pagination starts at page 0.
type Xnxx struct{}

func NewXnxx() *Xnxx { return &Xnxx{} }

func (x *Xnxx) Name() string { return "XNXX" }

func (x *Xnxx) FirstPage() int { return 0 }

func (x *Xnxx) VideoURL(query string, page int) string {
	page = clampPage(page, x.FirstPage())
	return fmt.Sprintf("%s/search/%s/%d", xnxxBaseURL, url.PathEscape(strings.TrimSpace(query)), page)
}

func (x *Xnxx) ParseVideos(html string) []Video {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var results []Video
	doc.Find("div.thumb").Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a").First()
		if link.Length() == 0 {
			return
		}

		href := link.AttrOr("href", "")
		var id string
		if m := xnxxIDRe.FindStringSubmatch(href); m != nil {
			id = m[1]
		}

		title := strings.TrimSpace(link.AttrOr("title", ""))

		var thumb string
		if img := item.Find("img").First(); img.Length() > 0 {
			thumb = firstNonEmpty(img.AttrOr("data-src", ""), img.AttrOr("src", ""))
		}

		duration := "N/A"
		if meta := item.Find("p.metadata").First(); meta.Length() > 0 {
			if m := xnxxDurationRe.FindStringSubmatch(meta.Text()); m != nil {
				duration = m[1]
			}
		}

		if id == "" || href == "" || title == "" || thumb == "" {
			return
		}

		videoURL := MakeAbsolute(href, xnxxBaseURL)
		thumbURL := MakeAbsolute(thumb, xnxxBaseURL)
		if videoURL == "" || thumbURL == "" {
			return
		}

		results = append(results, Video{
			ID:        id,
			Title:     title,
			URL:       videoURL,
			Thumbnail: thumbURL,
			Duration:  duration,
			Source:    x.Name(),
			Type:      TypeVideo,
		})
	})
	return results
}
