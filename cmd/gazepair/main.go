// gazepair aligns eye-tracking gaze samples of digital reading sessions with the
// words shown on screen.
//
// For every gaze sample inside a session's digital reading segment it writes one
// CSV row holding the gaze point, the sample times, the geometry file on screen and
// the distance from the gaze point to every word of that document.
//
// Configuration:
//
// An optional YAML configuration file sets the data directory, the session list
// and the pairing options. Every key is optional:
//
//	data_dir: "data"
//	sessions: ["first_participant", "second_participant"]
//	xml_dir: "xml"
//	correct_text_dir: "correct_text"
//	output_file: "eye_tracking_words.csv"
//	segment_label: "digital reading"
//	tolerance: 0.05
//	metric: "legacy"       # or "rect"
//	matching: "first"      # or "positional"
//	columns: "strict"      # or "first"
//	docai:
//	  project_id: "your-gcp-project-id"
//	  location: "us"
//	  processor_id: "your-processor-id"
//
// A .env file in the working directory is loaded first. GAZEPAIR_DATA_DIR
// overrides data_dir, and GOOGLE_APPLICATION_CREDENTIALS authenticates the ocr
// command with Google Cloud.
//
// Usage:
//
//	gazepair pair [session...] [--all] [--jobs N]
//	gazepair convert input.hocr output.xml [--filename name.txt] [--text name.txt]
//	gazepair ocr session [--images screens] [--debug-api dir]
//	gazepair overlay session -o overlay.pdf
//
// Example:
//
//	gazepair --config gazepair.yml pair --all --jobs 4
//	gazepair --config gazepair.yml overlay first_participant -o first.pdf
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
