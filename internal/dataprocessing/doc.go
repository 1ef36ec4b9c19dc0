// Package dataprocessing reads OEWS survey spreadsheets into raw tabular
// form. It is the reader collaborator of the table store: cells come back
// exactly as the source encodes them, including missing-value sentinels;
// all cleaning happens downstream.
package dataprocessing
