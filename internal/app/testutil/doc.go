// Package testutil provides shared test helpers for the audio-api packages.
//
// It contains three groups of helpers:
//
// 1. Mocks (mock_transcriber.go, mock_converter.go):
//   - MockTranscriber: testify mock of api.Transcriber that also records
//     whether the input file existed when the adapter was called
//   - MockConverter: testify mock of audio.Converter that writes a fake MP3
//     to the output path on success
//
// 2. Fixtures (fixtures.go):
//   - SilentWAV: a valid 16 kHz mono PCM WAV of a given duration
//   - FakeMP3: bytes that start with an ID3 header
//
// 3. Fake binaries (scripts.go):
//   - WriteScript: writes an executable shell script used in place of
//     ffmpeg, ffprobe or whisper.cpp
//
// # Usage
//
//	func TestTranscribe(t *testing.T) {
//	    transcriber := testutil.NewMockTranscriber()
//	    transcriber.On("Transcript", mock.Anything, mock.Anything).Return("ola mundo", nil)
//	    // ...
//	    transcriber.AssertExpectations(t)
//	}
package testutil
