package parser

import (
	"regexp"
	"strings"
)

var (
	imageRe = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	linkRe  = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

var imageSuffixes = []string{".png", ".jpg", ".jpeg", ".gif", ".svg"}

// ExtractImages returns the targets of all ![alt](target) references.
func ExtractImages(text string) []string {
	images := []string{}
	for _, m := range imageRe.FindAllStringSubmatch(text, -1) {
		images = append(images, linkTarget(m[2]))
	}
	return images
}

// ExtractLinks returns the web targets of [text](target) references. Image
// references, non-http(s) targets and targets naming an image file are
// excluded.
func ExtractLinks(text string) []string {
	links := []string{}
	for _, loc := range linkRe.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > 0 && text[loc[0]-1] == '!' {
			continue
		}
		target := linkTarget(text[loc[4]:loc[5]])
		if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
			continue
		}
		if hasImageSuffix(target) {
			continue
		}
		links = append(links, target)
	}
	return links
}

// linkTarget drops an optional quoted title from a reference target.
func linkTarget(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, " \t"); i > 0 {
		return raw[:i]
	}
	return raw
}

func hasImageSuffix(target string) bool {
	lower := strings.ToLower(target)
	for _, suffix := range imageSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
