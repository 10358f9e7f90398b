package driver

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const redtubeBaseURL = "https://www.redtube.com"

var redtubeIDRe = regexp.MustCompile(`/(\d+)`)

// Redtube searches videos on redtube.com.
type Redtube struct{}

func NewRedtube() *Redtube { return &Redtube{} }

func (r *Redtube) Name() string { return "Redtube" }

func (r *Redtube) FirstPage() int { return 1 }

func (r *Redtube) VideoURL(query string, page int) string {
	page = clampPage(page, r.FirstPage())
	params := url.Values{}
	params.Set("search", strings.TrimSpace(query))
	params.Set("page", strconv.Itoa(page))
	return redtubeBaseURL + "/?" + params.Encode()
}

func (r *Redtube) ParseVideos(html string) []Video {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var results []Video
	doc.Find("li.video_li").Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a.video_link").First()
		if link.Length() == 0 {
			return
		}

		href := link.AttrOr("href", "")
		var id string
		if m := redtubeIDRe.FindStringSubmatch(href); m != nil {
			id = m[1]
		}

		title := strings.TrimSpace(link.AttrOr("title", ""))

		var thumb string
		if img := item.Find("img").First(); img.Length() > 0 {
			thumb = firstNonEmpty(img.AttrOr("data-src", ""), img.AttrOr("src", ""))
		}

		duration := NormalizeDuration(item.Find("span.duration").First().Text())

		if id == "" || href == "" || title == "" || thumb == "" {
			return
		}

		videoURL := MakeAbsolute(href, redtubeBaseURL)
		thumbURL := MakeAbsolute(thumb, redtubeBaseURL)
		if videoURL == "" || thumbURL == "" {
			return
		}

		results = append(results, Video{
			ID:        id,
			Title:     title,
			URL:       videoURL,
			Thumbnail: thumbURL,
			Duration:  duration,
			Source:    r.Name(),
			Type:      TypeVideo,
		})
	})
	return results
}
