package utils

import "strings"

/**************************************************************************************************
** DefaultMediaExtensions lists the file types an import batch may contain: still images,
** videos and AAE adjustment sidecars. Extensions are lowercase and include the leading dot.
**************************************************************************************************/
var DefaultMediaExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".heic", ".heif", ".tif", ".tiff",
	".dng", ".raw", ".cr2", ".cr3", ".nef", ".arw", ".webp", ".bmp",
	".mov", ".mp4", ".m4v", ".avi",
	".aae",
}
var DefaultMediaExtensionsString = strings.Join(DefaultMediaExtensions, ",")
