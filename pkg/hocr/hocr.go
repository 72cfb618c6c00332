// Package hocr implements parsing, distance computation, and generation of the OCR
// geometry markup that describes what was on screen during a reading session.
//
// This package provides:
//
// - A small object model of the on-screen text: Markup → Lines → Words
// - Functions for parsing the legacy geometry markup (and Tesseract hOCR) into Go types
// - Functions for generating legacy geometry markup from the object model
// - Distance metrics between a gaze point and a word's bounding box
//
// The legacy markup is a thin hOCR derivative:
//
//	<root filename="page-1.txt">
//	  <line bbox="612 80 40 102">
//	    <word bbox="98 80 40 102">Once</word>
//	  </line>
//	</root>
//
// Bounding boxes in the legacy markup are written in the order
// right, top, left, bottom. That order is part of the format and is preserved.
//
// Key Types:
//
// - Markup: one parsed geometry source with the transcription filename it names
// - Line: a line of words, whose String form joins its non-empty words
// - Word: a recognized word with bounding box
// - BoundingBox: the four sides of a box in screen pixels
// - Metric: how the distance from a point to a box is measured
//
// Main Functions:
//
// - ParseMarkup: Parses legacy markup or hOCR into the object model
// - GenerateMarkup: Generates legacy markup from the object model
package hocr
