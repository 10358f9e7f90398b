package driver

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const xvideosBaseURL = "https://www.xvideos.com"

var (
	xvideosIDRe       = regexp.MustCompile(`/video([0-9]+)/`)
	xvideosDurationRe = regexp.MustCompile(`(\d+:\d+)`)
)

// Xvideos searches videos on xvideos.com. Pagination starts at page 0.
type Xvideos struct{}

func NewXvideos() *Xvideos { return &Xvideos{} }

func (x *Xvideos) Name() string { return "Xvideos" }

func (x *Xvideos) FirstPage() int { return 0 }

func (x *Xvideos) VideoURL(query string, page int) string {
	page = clampPage(page, x.FirstPage())
	params := url.Values{}
	params.Set("k", strings.TrimSpace(query))
	params.Set("p", strconv.Itoa(page))
	return xvideosBaseURL + "/?" + params.Encode()
}

func (x *Xvideos) ParseVideos(html string) []Video {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var results []Video
	doc.Find("div.thumb-block, div.thumb").Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a").First()
		if link.Length() == 0 {
			return
		}

		href := link.AttrOr("href", "")
		var id string
		if m := xvideosIDRe.FindStringSubmatch(href); m != nil {
			id = m[1]
		}

		title := firstNonEmpty(
			link.AttrOr("title", ""),
			item.Find("p.title").First().Text(),
		)

		var thumb string
		if img := item.Find("img").First(); img.Length() > 0 {
			thumb = firstNonEmpty(img.AttrOr("data-src", ""), img.AttrOr("src", ""))
		}

		duration := "N/A"
		if meta := item.Find("p.metadata").First(); meta.Length() > 0 {
			if m := xvideosDurationRe.FindStringSubmatch(meta.Text()); m != nil {
				duration = m[1]
			}
		}

		if id == "" || href == "" || title == "" || thumb == "" {
			return
		}

		videoURL := MakeAbsolute(href, xvideosBaseURL)
		thumbURL := MakeAbsolute(thumb, xvideosBaseURL)
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
