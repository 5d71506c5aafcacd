package slp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// decodeMetadata walks the trailing UBJSON-subset object starting at
// cursor, producing a JSON text rendering while side-effecting
// start-time, played-on and per-player netplay tags onto replay. Only
// five marker bytes are understood; anything else is DecodeBadMetadata.
// This is deliberately not a general UBJSON reader (spec.md §9): the
// subset and its corner cases (trailing-comma stripping, keypath
// tracking for "netplay" under "players,<n>") are specific to this
// format.
const (
	markerKey    = 0x55 // 'U'
	markerObjOpn = 0x7b // '{'
	markerObjEnd = 0x7d // '}'
	markerString = 0x53 // 'S'
	markerInt32  = 0x6c // 'l'
)

var trailingCommaRE = regexp.MustCompile(`(,)(\s*})`)

func decodeMetadata(data []byte, base int, replay *Replay) (string, error) {
	var sb strings.Builder
	indent := " "
	keypath := ""
	i := 0

	for {
		marker, err := readU8(data, base+i)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrTruncated, err)
		}

		var key string
		switch marker {
		case markerKey:
			strlen, err := readU8(data, base+i+1)
			if err != nil {
				return "", fmt.Errorf("%w: %v", ErrTruncated, err)
			}
			if err := requireLen(data, base+i+2, int(strlen)); err != nil {
				return "", fmt.Errorf("%w: %v", ErrBadMetadata, err)
			}
			key = string(data[base+i+2 : base+i+2+int(strlen)])
			keypath += "," + key
			if key != "metadata" {
				sb.WriteString(indent)
				sb.WriteString(fmt.Sprintf("%q : ", key))
			}
			i = i + 2 + int(strlen)
		case markerObjEnd:
			if idx := strings.LastIndex(keypath, ","); idx >= 0 {
				keypath = keypath[:idx]
			}
			indent = indent[:len(indent)-1]
			if len(indent) == 0 {
				return finalizeMetadata(sb.String()), nil
			}
			sb.WriteString(indent)
			sb.WriteString("},\n")
			i++
			continue
		default:
			return "", fmt.Errorf("%w: expected key marker at offset %d, got 0x%02X", ErrBadMetadata, base+i, marker)
		}

		valueMarker, err := readU8(data, base+i)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrTruncated, err)
		}

		switch valueMarker {
		case markerObjOpn:
			sb.WriteString("{\n")
			if key != "metadata" {
				indent += " "
			}
			i++
		case markerString:
			innerMarker, err := readU8(data, base+i+1)
			if err != nil {
				return "", fmt.Errorf("%w: %v", ErrTruncated, err)
			}
			if innerMarker != markerKey {
				return "", fmt.Errorf("%w: unsupported long string at offset %d", ErrBadMetadata, base+i)
			}
			strlen, err := readU8(data, base+i+2)
			if err != nil {
				return "", fmt.Errorf("%w: %v", ErrTruncated, err)
			}
			if err := requireLen(data, base+i+3, int(strlen)); err != nil {
				return "", fmt.Errorf("%w: %v", ErrBadMetadata, err)
			}
			val := string(data[base+i+3 : base+i+3+int(strlen)])
			sb.WriteString(fmt.Sprintf("%q,\n", val))

			switch {
			case key == "startAt":
				replay.StartTime = val
			case key == "playedOn":
				replay.PlayedOn = val
			case key == "netplay":
				if portpos := strings.Index(keypath, "players,"); portpos >= 0 {
					rest := keypath[portpos+len("players,"):]
					if len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
						port, _ := strconv.Atoi(string(rest[0]))
						if port >= 0 && port < 4 {
							replay.Player[port].NetplayTag = val
						}
					}
				}
			}

			i = i + 3 + int(strlen)
			if idx := strings.LastIndex(keypath, ","); idx >= 0 {
				keypath = keypath[:idx]
			}
		case markerInt32:
			n, err := readBE4S(data, base+i+1)
			if err != nil {
				return "", fmt.Errorf("%w: %v", ErrTruncated, err)
			}
			sb.WriteString(fmt.Sprintf("%d,\n", n))
			i += 5
			if idx := strings.LastIndex(keypath, ","); idx >= 0 {
				keypath = keypath[:idx]
			}
		default:
			return "", fmt.Errorf("%w: expected value marker at offset %d, got 0x%02X", ErrBadMetadata, base+i, valueMarker)
		}
	}
}

func finalizeMetadata(raw string) string {
	trimmed := strings.TrimSuffix(strings.TrimRight(raw, "\n"), ",")
	return trailingCommaRE.ReplaceAllString(trimmed, "$2")
}
