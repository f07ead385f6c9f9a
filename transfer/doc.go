// Package transfer reads and writes record lists as CSV or XML files.
//
// CSV files start with the header
//
//	Id,First Name,Last Name,Date of Birth,Sex,Weight,Height
//
// and XML files look like
//
//	<records>
//	  <record id="1">
//	    <name first="Ann" last="Lee"></name>
//	    <dateOfBirth>01/01/1990</dateOfBirth>
//	    <sex>F</sex>
//	    <weight>60</weight>
//	    <height>160</height>
//	  </record>
//	</records>
//
// Dates use MM/dd/yyyy. Files whose names end in .zst or .lz4 are compressed
// with zstd or lz4 on export and decompressed on import. Rows that fail to
// parse are skipped and returned as RowErrors; validation happens later, in
// the store's Restore.
package transfer
