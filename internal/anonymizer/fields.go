package anonymizer

// sensitiveFieldNames is the de-identification table from the TCIA
// De-identification Knowledge Base:
// https://wiki.cancerimagingarchive.net/display/Public/De-identification+Knowledge+Base
//
// Entries are matched against attribute keywords exactly as written. A few
// entries are not standard DICOM keywords and never match.
var sensitiveFieldNames = []string{
	"AccessionNumber",
	"AcquisitionComments",
	"AcquisitionContextSeq",
	"AcquisitionDate",
	"AcquisitionDatetime",
	"AcquisitionDeviceProcessingDescription",
	"AcquisitionProtocolDescription",
	"AcquisitionTime",
	"ActualHumanPerformersSequence",
	"AdditionalPatientHistory",
	"AdmissionID",
	"AdmittingDate",
	"AdmittingDiagnosesCodeSeq",
	"AdmittingDiagnosesDescription",
	"AdmittingTime",
	"Allergies",
	"Arbitrary",
	"AuthorObserverSequence",
	"BlockOwner",
	"BodyPartExamined",
	"BranchOfService",
	"BurnedInAnnotation",
	"CassetteID",
	"CommentsOnPPS",
	"ConcatenationUID",
	"ConfidentialityPatientData",
	"ContentCreatorsIdCodeSeq",
	"ContentCreatorsName",
	"ContentDate",
	"ContentSeq",
	"ContentTime",
	"ContextGroupExtensionCreatorUID",
	"ContrastBolusAgent",
	"ContributionDescription",
	"CountryOfResidence",
	"CreatorVersionUID",
	"CurrentPatientLocation",
	"CurveDate",
	"CurveTime",
	"CustodialOrganizationSeq",
	"DataSetTrailingPadding",
	"DateofLastCalibration",
	"DateofLastDetectorCalibration",
	"DateOfSecondaryCapture",
	"DeIdentificationMethod",
	"DeIdentificationMethodCodeSequence",
	"DerivationDescription",
	"DetectorID",
	"DeviceSerialNumber",
	"DeviceUID",
	"DigitalSignaturesSeq",
	"DigitalSignatureUID",
	"DimensionOrganizationUID",
	"DischargeDiagnosisDescription",
	"DistributionAddress",
	"DistributionName",
	"DoseReferenceUID",
	"EthnicGroup",
	"FailedSOPInstanceUIDList",
	"FiducialUID",
	"FillerOrderNumber",
	"FrameComments",
	"FrameOfReferenceUID",
	"GantryID",
	"GeneratorID",
	"GraphicAnnotationSequence",
	"HumanPerformersName",
	"HumanPerformersOrganization",
	"IconImageSequence",
	"IdentifyingComments",
	"ImageComments",
	"ImagePresentationComments",
	"ImagingServiceRequestComments",
	"Impressions",
	"InstanceCreationDate",
	"InstanceCreatorUID",
	"InstitutionAddress",
	"InstitutionalDepartmentName",
	"InstitutionCodeSequence",
	"InstitutionName",
	"InsurancePlanIdentification",
	"IntendedRecipientsOfResultsIDSequence",
	"InterpretationApproverSequence",
	"InterpretationAuthor",
	"InterpretationDiagnosisDescription",
	"InterpretationIdIssuer",
	"InterpretationRecorder",
	"InterpretationText",
	"InterpretationTranscriber",
	"IrradiationEventUID",
	"IssuerOfAdmissionID",
	"IssuerOfPatientID",
	"IssuerOfServiceEpisodeId",
	"LargePaletteColorLUTUid",
	"LastMenstrualDate",
	"LongitudinalTemporalInformationModified",
	"MAC",
	"Manufacturer",
	"ManufacturerModelName",
	"MedicalAlerts",
	"MedicalRecordLocator",
	"MilitaryRank",
	"ModifiedAttributesSequence",
	"ModifiedImageDescription",
	"ModifyingDeviceID",
	"ModifyingDeviceManufacturer",
	"NameOfPhysicianReadingStudy",
	"NamesOfIntendedRecipientsOfResults",
	"Occupation",
	"OperatorName",
	"OperatorsIdentificationSeq",
	"OrderCallbackPhoneNumber",
	"OrderEnteredBy",
	"OrderEntererLocation",
	"OriginalAttributesSequence",
	"OtherPatientIDs",
	"OtherPatientIDsSeq",
	"OtherPatientNames",
	"OverlayDate",
	"overlays",
	"OverlayTime",
	"PaletteColorLUTUID",
	"ParticipantSequence",
	"PatientAddress",
	"PatientAge",
	"PatientBirthDate",
	"PatientBirthName",
	"PatientBirthTime",
	"PatientComments",
	"PatientID",
	"PatientIdentityRemoved",
	"PatientInstitutionResidence",
	"PatientInsurancePlanCodeSeq",
	"PatientMotherBirthName",
	"PatientName",
	"PatientPhoneNumbers",
	"PatientPrimaryLanguageCodeSeq",
	"PatientPrimaryLanguageModifierCodeSeq",
	"PatientReligiousPreference",
	"PatientSex",
	"PatientSexNeutered",
	"PatientSize",
	"PatientState",
	"PatientTransportArrangements",
	"PatientWeight",
	"PerformedLocation",
	"PerformedStationAET",
	"PerformedStationGeoLocCodeSeq",
	"PerformedStationName",
	"PerformedStationNameCodeSeq",
	"PerformingPhysicianIdSeq",
	"PerformingPhysicianName",
	"PerformProcedureStepEndDate",
	"PersonAddress",
	"PersonIdCodeSequence",
	"PersonName",
	"PersonTelephoneNumbers",
	"PhysicianApprovingInterpretation",
	"PhysicianOfRecord",
	"PhysicianOfRecordIdSeq",
	"PhysicianReadingStudyIdSeq",
	"PlaceOrderNumberOfImagingServiceReq",
	"PlateID",
	"PPSDescription",
	"PPSID",
	"PPSStartDate",
	"PPSStartTime",
	"PregnancyStatus",
	"PreMedication",
	"ProjectName",
	"ProtocolName",
	"Radiopharmaceutical Information Sequence",
	"Radiopharmaceutical Start DateTime",
	"Radiopharmaceutical Stop DateTime",
	"ReasonForImagingServiceRequest",
	"ReasonforStudy",
	"RefDigitalSignatureSeq",
	"ReferencedFrameOfReferenceUID",
	"ReferencedPatientAliasSeq",
	"ReferringPhysicianAddress",
	"ReferringPhysicianName",
	"ReferringPhysicianPhoneNumbers",
	"ReferringPhysiciansIDSeq",
	"RefGenPurposeSchedProcStepTransUID",
	"RefImageSeq",
	"RefPatientSeq",
	"RefPPSSeq",
	"RefSOPClassUID",
	"RefSOPInstanceMACSeq",
	"RefSOPInstanceUID",
	"RefStudySeq",
	"RegionOfResidence",
	"RelatedFrameOfReferenceUID",
	"RequestAttributesSeq",
	"RequestedContrastAgent",
	"RequestedProcedureComments",
	"RequestedProcedureDescription",
	"RequestedProcedureID",
	"RequestedProcedureLocation",
	"RequestingPhysician",
	"RequestingService",
	"ResponsibleOrganization",
	"ResponsiblePerson",
	"ResultComments",
	"ResultsDistributionListSeq",
	"ResultsIDIssuer",
	"ReviewerName",
	"ScheduledHumanPerformersSeq",
	"ScheduledPatientInstitutionResidence",
	"ScheduledPerformingPhysicianIDSeq",
	"ScheduledPerformingPhysicianName",
	"ScheduledStationAET",
	"ScheduledStationGeographicLocCodeSeq",
	"ScheduledStationName",
	"ScheduledStationNameCodeSeq",
	"ScheduledStudyLocation",
	"ScheduledStudyLocationAET",
	"ScheduledStudyStartDate",
	"SeriesDate",
	"SeriesDescription",
	"SeriesInstanceUID",
	"SeriesTime",
	"ServiceEpisodeDescription",
	"ServiceEpisodeID",
	"SiteID",
	"SiteName",
	"SmokingStatus",
	"SoftwareVersion",
	"SOPInstanceUID",
	"SourceImageSeq",
	"SpecialNeeds",
	"SPSDescription",
	"SPSEndDate",
	"SPSEndTime",
	"SPSLocation",
	"SPSStartDate",
	"SPSStartTime",
	"StationName",
	"StorageMediaFilesetUID",
	"StructureSetDate",
	"StudyArrivalDate",
	"StudyComments",
	"StudyCompletionDate",
	"StudyDate",
	"StudyDescription",
	"StudyID",
	"StudyIDIssuer",
	"StudyInstanceUID",
	"StudyTime",
	"SynchronizationFrameOfReferenceUID",
	"TemplateExtensionCreatorUID",
	"TemplateExtensionOrganizationUID",
	"TextComments",
	"TextString",
	"TimezoneOffsetFromUTC",
	"TopicAuthor",
	"TopicKeyWords",
	"TopicSubject",
	"TopicTitle",
	"TransactionUID",
	"TrialName",
	"UID",
	"VerifyingObserverIdentificationCodeSeq",
	"VerifyingObserverName",
	"VerifyingObserverSequence",
	"VerifyingOrganization",
	"VisitComments",
	"VOILUTSequence", // needed if you have problems with WW/WC
}
