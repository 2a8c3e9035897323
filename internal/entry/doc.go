// Package entry reads and writes journal entries.
//
// An entry is a small plain-text page:
//
//	#coach                        (optional header, see Codec)
//	2021-10-31                    label
//	mood: fine                    observations, "name: value"
//
//	TODO take a break             tasks: TODO, WORKING, DONE, CANCELLED
//	DONE pet the dog
//
//	* <2021-10-31 Sun 21:10> lab  events, timestamps in UTC
//
//	First note                    notes, separated by blank lines
//
// Each body line is tried as a task, then as an event, then as the start of a
// note. That order decides which texts can be notes at all, so AsNote rejects
// anything that would read back as a task or event.
package entry
