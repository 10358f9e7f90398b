package driver

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const wowxxxBaseURL = "https://www.wow.xxx"

var (
	wowxxxSlugIDRe    = regexp.MustCompile(`/video/([a-zA-Z0-9_-]+)`)
	wowxxxNumericIDRe = regexp.MustCompile(`/([0-9]+)/`)
)

// WowXXX searches videos on wow.xxx.
type WowXXX struct{}

func NewWowXXX() *WowXXX { return &WowXXX{} }

func (w *WowXXX) Name() string { return "Wow.xxx" }

func (w *WowXXX) FirstPage() int { return 1 }

func (w *WowXXX) VideoURL(query string, page int) string {
	page = clampPage(page, w.FirstPage())
	return fmt.Sprintf("%s/search/%s?page=%d", wowxxxBaseURL, url.PathEscape(strings.TrimSpace(query)), page)
}

func (w *WowXXX) ParseVideos(html string) []Video {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	items := doc.Find("div.item, div.video-item, div.video-block")
	if items.Length() == 0 {
		items = doc.Find("article.video, article.item")
	}

	var results []Video
	items.Each(func(_ int, item *goquery.Selection) {
		link := item.Find(`a[href*="/video/"]`).First()
		if link.Length() == 0 {
			link = item.Find("a").First()
		}
		if link.Length() == 0 {
			return
		}

		href := link.AttrOr("href", "")
		var id string
		if m := wowxxxSlugIDRe.FindStringSubmatch(href); m != nil {
			id = m[1]
		} else if m := wowxxxNumericIDRe.FindStringSubmatch(href); m != nil {
			id = m[1]
		}

		title := firstNonEmpty(
			link.AttrOr("title", ""),
			item.Find("h2").First().Text(),
			item.Find("h3").First().Text(),
			item.Find("span.title").First().Text(),
			item.Find("div.title").First().Text(),
		)
		if title == "" || strings.EqualFold(title, "untitled") {
			title = "Wow.xxx Video"
		}

		var thumb string
		if img := item.Find("img").First(); img.Length() > 0 {
			thumb = firstNonEmpty(
				img.AttrOr("data-src", ""),
				img.AttrOr("data-lazy", ""),
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

		videoURL := MakeAbsolute(href, wowxxxBaseURL)
		thumbURL := MakeAbsolute(thumb, wowxxxBaseURL)
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
			Source:    w.Name(),
			Type:      TypeVideo,
		})
	})
	return results
}
