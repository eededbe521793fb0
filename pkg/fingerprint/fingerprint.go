// Package fingerprint computes content identities for files headed into an import batch:
// an exact identity (sha256) for byte-duplicate detection and a perceptual hash for
// near-duplicate detection, with an optional sqlite-backed cache.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/corona10/goimagehash"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

/**************************************************************************************************
** File computes the exact content identity of a file as a hex-encoded sha256 digest.
**
** @param path - The file to fingerprint
** @return string - Hex digest of the file contents
** @return error - Wrapped I/O error
**************************************************************************************************/
func File(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	digest := sha256.New()
	if _, err := io.Copy(digest, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}

/**************************************************************************************************
** Perceptual computes the perception hash of an image file. Decoders are registered for
** jpeg, png, gif, webp, bmp and tiff; other formats fail with the decode error.
**
** @param path - The image file to hash
** @return uint64 - The 64-bit perception hash
** @return error - Wrapped open, decode or hash error
**************************************************************************************************/
func Perceptual(path string) (uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return 0, fmt.Errorf("failed to decode image: %w", err)
	}
	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return 0, fmt.Errorf("failed to compute hash: %w", err)
	}
	return hash.GetHash(), nil
}

/**************************************************************************************************
** HammingDistance counts the differing bits between two perception hashes. Lower means
** more similar; identical images score 0.
**
** @param hash1 - First hash
** @param hash2 - Second hash
** @return int - Number of differing bits
**************************************************************************************************/
func HammingDistance(hash1, hash2 uint64) int {
	xor := hash1 ^ hash2
	count := 0
	for xor != 0 {
		count++
		xor &= xor - 1
	}
	return count
}

/**************************************************************************************************
** ClusterByDistance buckets paths whose perception hashes lie within maxDistance bits of a
** cluster's first member. Paths and hashes are parallel slices; clusters come out in
** first-seen order, each keeping its members' input order. A path joins the first cluster
** close enough to its representative, so chains of pairwise-similar images do not collapse
** into one bucket transitively.
**
** @param paths - Image paths, parallel to hashes
** @param hashes - Perception hashes, parallel to paths
** @param maxDistance - Maximum Hamming distance to a cluster representative
** @return [][]string - All clusters, singletons included
**************************************************************************************************/
func ClusterByDistance(paths []string, hashes []uint64, maxDistance int) [][]string {
	var clusters [][]string
	var representatives []uint64
	for i, path := range paths {
		placed := false
		for c, rep := range representatives {
			if HammingDistance(hashes[i], rep) <= maxDistance {
				clusters[c] = append(clusters[c], path)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, []string{path})
			representatives = append(representatives, hashes[i])
		}
	}
	return clusters
}
