package emu_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/urisc/emu"
)

var _ = Describe("Memory", func() {
	var memory *emu.Memory

	BeforeEach(func() {
		memory = emu.NewMemory()
	})

	Describe("bytes", func() {
		It("should store and load bytes across the whole store", func() {
			Expect(memory.StoreByte(0x00, 0x11)).To(Succeed())
			Expect(memory.StoreByte(0xFF, 0x22)).To(Succeed())

			b, err := memory.LoadByte(0xFF)
			Expect(err).NotTo(HaveOccurred())
			Expect(b).To(Equal(uint8(0x22)))
		})

		It("should reject addresses past 255", func() {
			_, err := memory.LoadByte(0x100)
			Expect(err).To(MatchError(emu.ErrOutOfBounds))

			err = memory.StoreByte(0x100, 1)
			Expect(errors.Is(err, emu.ErrOutOfBounds)).To(BeTrue())
		})
	})

	Describe("words", func() {
		It("should lay words out little-endian", func() {
			Expect(memory.StoreWord(0x10, 0x12345678)).To(Succeed())

			b0, _ := memory.LoadByte(0x10)
			b3, _ := memory.LoadByte(0x13)
			Expect(b0).To(Equal(uint8(0x78)))
			Expect(b3).To(Equal(uint8(0x12)))
		})

		It("should round-trip every valid address", func() {
			for addr := uint32(0); addr <= emu.MaxWordAddr; addr++ {
				v := 0x80000001 ^ addr*0x01010101
				Expect(memory.StoreWord(addr, v)).To(Succeed())
				Expect(memory.LoadWord(addr)).To(Equal(v))
			}
		})

		It("should reject word accesses past 252", func() {
			_, err := memory.LoadWord(253)
			Expect(err).To(MatchError(emu.ErrOutOfBounds))

			var access *emu.ErrAccess
			Expect(errors.As(memory.StoreWord(0xFF, 1), &access)).To(BeTrue())
			Expect(access.Width).To(Equal(4))
		})
	})

	Describe("LoadProgram", func() {
		It("should store every listed word", func() {
			err := memory.LoadProgram("0x0080: 0x00500093\n0x0084: 0x00108113")
			Expect(err).NotTo(HaveOccurred())

			Expect(memory.LoadWord(0x80)).To(Equal(uint32(0x00500093)))
			Expect(memory.LoadWord(0x84)).To(Equal(uint32(0x00108113)))
		})

		It("should clear the program segment but keep data", func() {
			Expect(memory.StoreWord(0x00, 0xCAFEF00D)).To(Succeed())
			Expect(memory.StoreWord(0xFC, 0xFFFFFFFF)).To(Succeed())

			Expect(memory.LoadProgram("0x0080: 0x00000013")).To(Succeed())

			Expect(memory.LoadWord(0x00)).To(Equal(uint32(0xCAFEF00D)))
			Expect(memory.LoadWord(0xFC)).To(Equal(uint32(0)))
		})

		It("should not validate the program segment beyond word bounds", func() {
			Expect(memory.LoadProgram("0x0010: 0x0000002A")).To(Succeed())
			Expect(memory.LoadWord(0x10)).To(Equal(uint32(42)))
		})

		It("should fail for stores past the end", func() {
			err := memory.LoadProgram("0x0100: 0x00000001")
			Expect(err).To(MatchError(emu.ErrOutOfBounds))
		})

		It("should fail for malformed lines", func() {
			err := memory.LoadProgram("0x0080 0x00000001")
			Expect(err).To(MatchError(emu.ErrImageSyntax))

			var line *emu.ErrImageLine
			Expect(errors.As(err, &line)).To(BeTrue())
			Expect(line.LineNo).To(Equal(0))
		})
	})

	Describe("Reset", func() {
		It("should zero both segments", func() {
			Expect(memory.StoreWord(0x00, 1)).To(Succeed())
			Expect(memory.StoreWord(0x80, 1)).To(Succeed())

			memory.Reset()

			Expect(memory.Snapshot()).To(Equal([emu.MemSize]byte{}))
		})
	})

	Describe("views", func() {
		It("should split the store into segments", func() {
			Expect(memory.StoreByte(0x7F, 0xAA)).To(Succeed())
			Expect(memory.StoreByte(0x80, 0xBB)).To(Succeed())

			data := memory.DataSegment()
			prog := memory.ProgramSegment()
			Expect(data).To(HaveLen(128))
			Expect(prog).To(HaveLen(128))
			Expect(data[0x7F]).To(Equal(byte(0xAA)))
			Expect(prog[0]).To(Equal(byte(0xBB)))

			data[0x7F] = 0
			b, _ := memory.LoadByte(0x7F)
			Expect(b).To(Equal(uint8(0xAA)))
		})

		It("should classify segments", func() {
			Expect(emu.InData(0x7F)).To(BeTrue())
			Expect(emu.InData(0x80)).To(BeFalse())
			Expect(emu.InProgram(0x80)).To(BeTrue())
			Expect(emu.InProgram(0xFF)).To(BeTrue())
			Expect(emu.InProgram(0x100)).To(BeFalse())
		})
	})
})

var _ = Describe("ParseImage", func() {
	It("should parse assembler listings", func() {
		words, err := emu.ParseImage("0x0080: 0x00130093\n\n0x0084: 0xFFF00093\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(words).To(Equal([]emu.ImageWord{
			{Addr: 0x80, Value: 0x00130093},
			{Addr: 0x84, Value: 0xFFF00093},
		}))
	})

	It("should accept lines without 0x prefixes", func() {
		words, err := emu.ParseImage("80: 13")
		Expect(err).NotTo(HaveOccurred())
		Expect(words).To(ConsistOf(emu.ImageWord{Addr: 0x80, Value: 0x13}))
	})

	It("should reject bad hex", func() {
		_, err := emu.ParseImage("0x0080: 0xZZ")
		Expect(err).To(MatchError(emu.ErrImageSyntax))
	})
})
