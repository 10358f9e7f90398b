package driver

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const tnaflixBaseURL = "https://www.tnaflix.com"

var tnaflixIDRe = regexp.MustCompile(`/video(\d+)`)

// TNAFlix searches videos on tnaflix.com.
type TNAFlix struct{}

func NewTNAFlix() *TNAFlix { return &TNAFlix{} }

func (t *TNAFlix) Name() string { return "TNAFlix" }

func (t *TNAFlix) FirstPage() int { return 1 }

func (t *TNAFlix) VideoURL(query string, page int) string {
	page = clampPage(page, t.FirstPage())
	params := url.Values{}
	params.Set("what", strings.TrimSpace(query))
	params.Set("page", strconv.Itoa(page))
	return tnaflixBaseURL + "/search.php?" + params.Encode()
}

func (t *TNAFlix) ParseVideos(html string) []Video {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	items := doc.Find("div.videoBox, div.video-box, div.item")
	if items.Length() == 0 {
		items = doc.Find("div.video, div.thumb")
	}

	var results []Video
	items.Each(func(_ int, item *goquery.Selection) {
		link := item.Find(`a[href*="/video"]`).First()
		if link.Length() == 0 {
			link = item.Find("a").First()
		}
		if link.Length() == 0 {
			return
		}

		href := link.AttrOr("href", "")
		var id string
		if m := tnaflixIDRe.FindStringSubmatch(href); m != nil {
			id = m[1]
		}

		title := firstNonEmpty(
			link.AttrOr("title", ""),
			item.Find("div.title").First().Text(),
			item.Find("span.title").First().Text(),
			item.Find("h2").First().Text(),
			item.Find("a.title").First().Text(),
		)
		if title == "" || strings.EqualFold(title, "untitled") {
			title = "TNAFlix Video"
		}

		var thumb string
		if img := item.Find("img").First(); img.Length() > 0 {
			thumb = firstNonEmpty(
				img.AttrOr("data-original", ""),
				img.AttrOr("data-src", ""),
				img.AttrOr("src", ""),
			)
		}

		duration := NormalizeDuration(item.Find(
			"span.duration, div.duration, span.time, div.time, span.runtime, div.runtime",
		).First().Text())

		var views *string
		if v := strings.TrimSpace(item.Find("span.views, div.views, span.count, div.count").First().Text()); v != "" {
			views = &v
		}

		if id == "" || href == "" || thumb == "" {
			return
		}

		videoURL := MakeAbsolute(href, tnaflixBaseURL)
		thumbURL := MakeAbsolute(thumb, tnaflixBaseURL)
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
			Source:    t.Name(),
			Type:      TypeVideo,
		})
	})
	return results
}
