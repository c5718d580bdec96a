// imagecat - catalog photos and videos by capture date
//
// imagecat reads media files from a source directory and files them into a
// catalog tree organized by capture date. Dates come from embedded metadata
// when available, otherwise from well-known filename conventions (camera,
// panorama and messenger exports).
//
// Features:
//   - EXIF / exiftool creation date extraction
//   - Ordered filename pattern recognition (IMG_, PANO_, IMG-, VID-, bare dates)
//   - Duplicate detection via content hashing (MD5 or xxHash)
//   - Numeric suffixes for distinct files with colliding names
//   - Copy or move mode, dry-run simulation
//   - Optional CSV manifest and empty source folder cleanup
//
// Usage:
//
//	imagecat --from ~/Camera --to ~/Photos            # move into the catalog
//	imagecat --from ~/Camera --to ~/Photos --copy     # keep the originals
//	imagecat --from ~/Camera --to ~/Photos --dry-run  # preview only
//	imagecat --from ~/Camera --to ~/Photos -r         # include subdirectories
//
// Catalog layout:
//
//	Photos/
//	├── 2021/
//	│   ├── 2021_05_10/
//	│   │   ├── photo1.jpg
//	│   │   └── photo1_1.jpg   <- same name, different content
//	│   └── 2021_05_11/
//	└── _Manifest/             <- optional tracking CSV
package main

import (
	"os"

	"github.com/emabo/imagecat/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
