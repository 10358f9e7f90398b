package driver

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const spankbangBaseURL = "https://spankbang.com"

var spankbangIDRe = regexp.MustCompile(`/([a-z0-9_-]+)/video/`)

// SpankBang searches videos on spankbang.com.
type SpankBang struct{}

func NewSpankBang() *SpankBang { return &SpankBang{} }

func (s *SpankBang) Name() string { return "SpankBang" }

func (s *SpankBang) FirstPage() int { return 1 }

func (s *SpankBang) VideoURL(query string, page int) string {
	page = clampPage(page, s.FirstPage())
	return fmt.Sprintf("%s/s/%s/%d/", spankbangBaseURL, url.PathEscape(strings.TrimSpace(query)), page)
}

func (s *SpankBang) ParseVideos(html string) []Video {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var results []Video
	doc.Find("div.video-item").Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a").First()
		if link.Length() == 0 {
			return
		}

		href := link.AttrOr("href", "")
		var id string
		if m := spankbangIDRe.FindStringSubmatch(href); m != nil {
			id = m[1]
		}

		title := strings.TrimSpace(link.AttrOr("title", ""))

		// Thumbnails sit either directly in the item or inside a picture tag.
		var thumb string
		if img := item.Find("img").First(); img.Length() > 0 {
			thumb = firstNonEmpty(img.AttrOr("data-src", ""), img.AttrOr("src", ""))
		}

		duration := NormalizeDuration(item.Find("span.l").First().Text())

		if id == "" || href == "" || title == "" || thumb == "" {
			return
		}

		videoURL := MakeAbsolute(href, spankbangBaseURL)
		thumbURL := MakeAbsolute(thumb, spankbangBaseURL)
		if videoURL == "" || thumbURL == "" {
			return
		}

		results = append(results, Video{
			ID:        id,
			Title:     title,
			URL:       videoURL,
			Thumbnail: thumbURL,
			Duration:  duration,
			Source:    s.Name(),
			Type:      TypeVideo,
		})
	})
	return results
}
