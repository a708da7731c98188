// Package extract pulls candidate URLs out of HTML documents such as saved
// e-mails or web pages so that they can be scored in one batch.
//
// Links are collected from anchors, image maps, form actions and frames, and
// from bare URLs written in the document text. Only http and https links are
// returned, deduplicated in document order.
package extract
