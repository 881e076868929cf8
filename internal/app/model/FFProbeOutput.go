package model

// FFProbeOutput is the subset of `ffprobe -print_format json -show_streams` we read.
type FFProbeOutput struct {
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate int    `json:"sample_rate,string"`
		Channels   int    `json:"channels,omitempty"`
	} `json:"streams"`
}
