package driver

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	pornhubBaseURL    = "https://www.pornhub.com"
	pornhubGifBaseURL = "https://i.pornhub.com"
)

var (
	pornhubViewkeyRe = regexp.MustCompile(`viewkey=([a-zA-Z0-9]+)`)
	pornhubGifIDRe   = regexp.MustCompile(`/(\d+)/(\w+)`)
)

// Pornhub searches videos and gifs on pornhub.com.
type Pornhub struct{}

func NewPornhub() *Pornhub { return &Pornhub{} }

func (p *Pornhub) Name() string { return "Pornhub" }

func (p *Pornhub) FirstPage() int { return 1 }

func (p *Pornhub) VideoURL(query string, page int) string {
	page = clampPage(page, p.FirstPage())
	params := url.Values{}
	params.Set("search", strings.TrimSpace(query))
	params.Set("page", strconv.Itoa(page))
	return pornhubBaseURL + "/video/search?" + params.Encode()
}

func (p *Pornhub) ParseVideos(html string) []Video {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var results []Video
	doc.Find("div.phimage").Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a").First()
		if link.Length() == 0 {
			return
		}

		href := link.AttrOr("href", "")
		var id string
		if m := pornhubViewkeyRe.FindStringSubmatch(href); m != nil {
			id = m[1]
		}

		title := firstNonEmpty(
			link.AttrOr("title", ""),
			item.Find("span.title").First().Text(),
			item.AttrOr("data-video-title", ""),
		)

		var thumb string
		if img := item.Find("img").First(); img.Length() > 0 {
			thumb = firstNonEmpty(img.AttrOr("data-src", ""), img.AttrOr("src", ""))
		}
		// Placeholder thumbnails carry "nothumb" in the path.
		if thumb == "" || strings.Contains(thumb, "nothumb") {
			return
		}

		duration := NormalizeDuration(item.Find("var.duration, span.duration").First().Text())

		if id == "" || href == "" || title == "" {
			return
		}

		videoURL := MakeAbsolute(href, pornhubBaseURL)
		thumbURL := MakeAbsolute(thumb, pornhubBaseURL)
		if videoURL == "" || thumbURL == "" {
			return
		}

		results = append(results, Video{
			ID:        id,
			Title:     title,
			URL:       videoURL,
			Thumbnail: thumbURL,
			Duration:  duration,
			Source:    p.Name(),
			Type:      TypeVideo,
		})
	})
	return results
}

func (p *Pornhub) GifURL(query string, page int) string {
	page = clampPage(page, p.FirstPage())
	params := url.Values{}
	params.Set("search", strings.TrimSpace(query))
	params.Set("page", strconv.Itoa(page))
	return pornhubBaseURL + "/gifs/search?" + params.Encode()
}

func (p *Pornhub) ParseGifs(html string) []Video {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var results []Video
	doc.Find("div.gifImageBlock, div.img-container").Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a").First()
		if link.Length() == 0 {
			return
		}

		pageURL := link.AttrOr("href", "")
		id := item.AttrOr("data-id", "")
		if id == "" && pageURL != "" {
			if m := pornhubGifIDRe.FindStringSubmatch(pageURL); m != nil {
				id = m[1]
			}
		}

		img := item.Find("img").First()
		title := firstNonEmpty(img.AttrOr("alt", ""), link.AttrOr("title", ""))

		var animated string
		if img.Length() > 0 {
			animated = firstNonEmpty(img.AttrOr("data-src", ""), img.AttrOr("src", ""))
		}
		if !strings.HasSuffix(animated, ".gif") {
			return
		}
		animated = MakeAbsolute(animated, pornhubGifBaseURL)

		if id == "" || pageURL == "" || title == "" || animated == "" {
			return
		}

		pageURL = MakeAbsolute(pageURL, pornhubBaseURL)
		if pageURL == "" {
			return
		}

		results = append(results, Video{
			ID:           id,
			Title:        title,
			URL:          pageURL,
			Thumbnail:    animated,
			PreviewVideo: animated,
			Source:       p.Name(),
			Type:         TypeGif,
		})
	})
	return results
}
