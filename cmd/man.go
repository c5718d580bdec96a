package cmd

const manual = `IMAGECAT(1)

NAME
    imagecat - catalog photos and videos by capture date

SYNOPSIS
    imagecat --from <dir> --to <dir> [--copy] [--dry-run] [--recursive]
             [--max-depth <n>] [--verbose] [--hash md5|xxhash]
             [--metadata exif|exiftool] [--media-only] [--manifest]
             [--prune-empty] [--log-level <level>] [--config <file>]

DESCRIPTION
    imagecat reads the files in --from and files each of them into the
    catalog rooted at --to:

        <to>/YYYY/YYYY_MM_DD/name.ext

    Files are moved unless --copy is given. Files are processed one at a
    time, in name order, directory by directory.

DATE SOURCES
    The first source that yields a valid date wins:

    1. The creation date stored in the file's metadata
       (YYYY:MM:DD HH:MM:SS).
    2. The file name, tried against these patterns in order:

           IMG-YYYYMMDD            IMG-20210510-WA0001.jpg
           PANO_YYYYMMDD_HHMMSS    PANO_20210510_140000.jpg
           IMG_YYYYMMDD_HHMMSS     IMG_20210510_140000.jpg
           YYYYMMDD_HHMMSS         20210510_140000.jpg
           VID-YYYYMMDD            VID-20210510-WA0001.mp4
           YYYYMMDD                20210510.jpg

       A pattern only matches on word boundaries and only if it forms a
       real calendar date.

    Files without a date are skipped and left where they are.

DUPLICATES AND NAME COLLISIONS
    When the target name is taken, imagecat compares content hashes. If
    the existing file is identical the new one is already present: it is
    left in place with --copy and deleted otherwise. If the content
    differs the next free name is used: name_1.ext, name_2.ext, ...

    Running the same --copy command twice changes nothing the second time.

OPTIONS
    --from <dir>        Source directory. Required.
    --to <dir>          Catalog root. Required.
    --copy              Copy instead of move.
    -n, --dry-run       Report what would happen, touch nothing. The
                        summary matches the one a real run would print.
    -r, --recursive     Descend into all subdirectories.
    --max-depth <n>     Descend at most n levels. Implies --recursive and
                        takes precedence over it. 0 means top level only.
    -v, --verbose       Log every file instead of drawing a progress bar.
    --hash <alg>        md5 (default) or xxhash.
    --metadata <name>   exif (default, built in) or exiftool (needs the
                        exiftool binary, also reads video containers).
    --media-only        Ignore files that are not images or videos.
    --manifest          Record placed files in
                        <to>/_Manifest/catalog_manifest.csv.
    --prune-empty       After a move, remove source subdirectories that
                        ended up empty. --from itself is kept.
    --log-level <lvl>   debug, info, warn or error.
    --config <file>     Read options from file.
    -h, --help          Short usage.
    --man               This manual.

SUMMARY
    A run ends with six counts: examined, skipped, already present,
    copied, moved and renamed.

ENVIRONMENT
    Every option can be set as IMAGECAT_<OPTION>, dashes written as
    underscores, e.g. IMAGECAT_DRY_RUN=true.

FILES
    $HOME/.imagecat/imagecat.yaml, ./imagecat.yaml
        Default config files. Keys are the option names.

EXIT STATUS
    0   success, --help or --man
    1   a file could not be read, created, copied, moved or deleted
    2   invalid invocation (missing --from or --to, unknown flag or value)
`
