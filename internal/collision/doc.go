// Package collision decides the final catalog path of a file.
//
// Names are probed in order name.ext, name_1.ext, name_2.ext, ... Each
// occupied candidate is compared by content hash: a match means the file is
// already cataloged, a mismatch moves on to the next counter. Distinct content
// therefore never shares a path, and identical content is never stored twice
// under the same name.
//
// Only files that map to the same name are compared: identical content under
// two different names is cataloged twice.
package collision
