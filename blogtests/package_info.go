// Package blogtests contains the blog-list end-to-end scenarios and their supporting API.
//
// Harness infrastructure that is not specific to the blog-list application, such as setup
// phases, results, and test logging, is in the lower-level framework package. Reusable
// interactions with the application are in blogapp.
package blogtests
