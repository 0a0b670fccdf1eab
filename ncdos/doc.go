// Package ncdos implements the NCDOS virtual floppy: a flat disk image with
// a FAT-style filesystem.
//
// The stock geometry is 40 tracks of 16 sectors of 256 bytes (163,840
// bytes). Track 0 is reserved: sector 0 carries the boot signature, sectors
// 1-7 hold 64 directory entries of 32 bytes, and sectors 8-15 hold the FAT,
// one byte per disk sector (0xFF free, 0xFE end-of-chain, anything else the
// index of the next sector in the file's chain).
//
// Every mutating operation rewrites the whole image to its backing file;
// a crash mid-write can corrupt the image. There is no journaling.
package ncdos
