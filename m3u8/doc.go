package m3u8

/* Package m3u8 implements parsing of HLS media playlists.

HLS (HTTP Live Streaming) playlists are ext-m3u formatted text
documents described in [IETF RFC8216]. This package decodes a media
playlist (a playlist listing media segments, not a master playlist
listing variants) into a MediaPlaylist value that exposes the segment
list, the protocol version, the target duration, whether the playlist
has ended, and the segments regrouped by EXT-X-DISCONTINUITY
boundaries.

## Structure and design of the code

There is a single decoding routine shared by DecodeMediaPlaylist
(string input) and DecodeMediaPlaylistFrom (io.Reader input). It makes
one forward pass over the lines of the document. An EXTINF tag
announces the duration of the next segment; the following line
containing a ".ts" reference supplies its URI. Lines between the two
are skipped, so byte-range, date-time and other per-segment tags are
tolerated without being interpreted.

The supported tag set is deliberately small: EXTM3U, EXT-X-VERSION,
EXT-X-TARGETDURATION, EXTINF, EXT-X-DISCONTINUITY and EXT-X-ENDLIST.
Everything else is inert. The #EXTM3U header and a parseable
EXT-X-VERSION are the only hard requirements; their absence yields
ErrExtM3UAbsent and ErrVersionAbsent respectively.

Numeric tag payloads are reduced to their digit (and, for EXTINF,
'.') characters before parsing. With strict set to false, a payload
that still does not parse keeps the previous value and is reported in
MediaPlaylist.Warnings; with strict set to true it fails the decode.

Decode a playlist from a file:

	f, _ := os.Open("sample-playlists/media-with-discontinuities.m3u8")
	p, err := m3u8.DecodeMediaPlaylistFrom(bufio.NewReader(f), false)
	if err != nil {
	  log.Fatal(err)
	}
	fmt.Println(p.Version, len(p.Segments), len(p.Discontinuities))

Playlist generation, master playlists and live playlist reload are out
of scope for this package.

[IETF RFC8216]: https://tools.ietf.org/html/rfc8216
*/
