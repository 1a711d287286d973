package annotate

import "regexp"

var photoSizePattern = regexp.MustCompile(`-w\d+_h\d+`)

// upgradePhotoURL rewrites CDN size hints to the largest variant so popups
// do not embed thumbnail-resolution images.
func upgradePhotoURL(href string) string {
	if href == "" {
		return href
	}
	return photoSizePattern.ReplaceAllString(href, "-w1024_h768")
}

// pickImage applies the popup image fallback chain: the pre-resolved
// high-resolution field, else the first gallery entry, else nothing.
func pickImage(hiRes string, photos []string) string {
	if hiRes != "" {
		return upgradePhotoURL(hiRes)
	}
	for _, p := range photos {
		if p != "" {
			return upgradePhotoURL(p)
		}
	}
	return ""
}
