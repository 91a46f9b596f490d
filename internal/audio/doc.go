// Package audio plays the optional sound attached to a toast style. It uses
// the beep library to decode WAV, OGG and MP3 files and caches decoded
// buffers until the file on disk changes.
package audio
